package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kindaboxs/meetboxs/domain"
	"github.com/kindaboxs/meetboxs/domain/model"
	"github.com/kindaboxs/meetboxs/pkg/logger"
)

const meetingAgentID = "01HZYAGENT0000000000000001"

func meetingRows(ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "agent_id", "name", "status", "created_at", "updated_at",
		"Agent__id", "Agent__user_id", "Agent__name", "Agent__instructions",
	})
	for _, id := range ids {
		rows.AddRow(id, ownerID, meetingAgentID, "Meeting "+id, "upcoming", time.Now(), time.Now(),
			meetingAgentID, ownerID, "Math tutor", "Teach math")
	}
	return rows
}

func TestMeetingRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMeetingRepository(db, logger.NoOpLogger())

	mock.ExpectQuery(`SELECT .+ FROM "meetings" INNER JOIN "agents" "Agent" ON .+ WHERE meetings\.id = \$1 AND meetings\.user_id = \$2`).
		WillReturnRows(meetingRows("01HZYMEET00000000000000001"))

	meeting, err := repo.GetByID(context.Background(), ownerID, "01HZYMEET00000000000000001")
	require.NoError(t, err)
	assert.Equal(t, "01HZYMEET00000000000000001", meeting.ID)
	assert.Equal(t, meetingAgentID, meeting.Agent.ID, "The joined agent should be populated")
	assert.Equal(t, "Math tutor", meeting.Agent.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeetingRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMeetingRepository(db, logger.NoOpLogger())

	mock.ExpectQuery(`SELECT .+ FROM "meetings" INNER JOIN "agents" "Agent" ON .+ WHERE meetings\.id = \$1 AND meetings\.user_id = \$2`).
		WillReturnRows(meetingRows())

	_, err := repo.GetByID(context.Background(), strangerID, "01HZYMEET00000000000000001")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeetingRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMeetingRepository(db, logger.NoOpLogger())

	page, err := domain.DefaultPageBounds().Resolve(1, 10)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT .+ FROM "meetings" INNER JOIN "agents" "Agent" ON .+ WHERE meetings\.user_id = \$1 ORDER BY meetings\.created_at DESC, meetings\.id DESC LIMIT`).
		WillReturnRows(meetingRows("01HZYMEET00000000000000002", "01HZYMEET00000000000000001"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "meetings" INNER JOIN "agents" "Agent" ON .+ WHERE meetings\.user_id = \$1`).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	meetings, total, err := repo.List(context.Background(), ownerID, domain.MeetingFilter{}, page)
	require.NoError(t, err)
	assert.Len(t, meetings, 2)
	assert.Equal(t, 2, total)
	assert.Equal(t, "Math tutor", meetings[0].Agent.Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Every provided filter must appear in both statements; absent ones must not
func TestMeetingRepository_List_AllFiltersPredicateParity(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMeetingRepository(db, logger.NoOpLogger())

	page, err := domain.DefaultPageBounds().Resolve(1, 10)
	require.NoError(t, err)

	filter := domain.MeetingFilter{
		Search:  "sprint",
		Status:  model.MeetingStatusCompleted,
		AgentID: meetingAgentID,
	}

	predicate := `WHERE meetings\.user_id = \$1 AND meetings\.name ILIKE \$2 AND meetings\.status = \$3 AND meetings\.agent_id = \$4`

	mock.ExpectQuery(`SELECT .+ FROM "meetings" INNER JOIN "agents" "Agent" ON .+ ` + predicate + ` ORDER BY`).
		WillReturnRows(meetingRows("01HZYMEET00000000000000001"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "meetings" INNER JOIN "agents" "Agent" ON .+ ` + predicate).
		WithArgs(ownerID, "%sprint%", "completed", meetingAgentID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, total, err := repo.List(context.Background(), ownerID, filter, page)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeetingRepository_List_StatusOnly(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMeetingRepository(db, logger.NoOpLogger())

	page, err := domain.DefaultPageBounds().Resolve(1, 10)
	require.NoError(t, err)

	predicate := `WHERE meetings\.user_id = \$1 AND meetings\.status = \$2`

	mock.ExpectQuery(`SELECT .+ FROM "meetings" INNER JOIN "agents" "Agent" ON .+ ` + predicate + ` ORDER BY`).
		WillReturnRows(meetingRows())
	mock.ExpectQuery(`SELECT count\(\*\) FROM "meetings" INNER JOIN "agents" "Agent" ON .+ ` + predicate).
		WithArgs(ownerID, "upcoming").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	meetings, total, err := repo.List(context.Background(), ownerID, domain.MeetingFilter{Status: model.MeetingStatusUpcoming}, page)
	require.NoError(t, err)
	assert.Empty(t, meetings)
	assert.Equal(t, 0, total)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeetingRepository_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMeetingRepository(db, logger.NoOpLogger())

	mock.ExpectExec(`UPDATE "meetings" SET .+ WHERE id = \$\d+ AND user_id = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &model.Meeting{
		ID:      "01HZYMEET000000000000MISSING",
		UserID:  ownerID,
		AgentID: meetingAgentID,
		Name:    "Renamed",
		Status:  model.MeetingStatusUpcoming,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeetingRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMeetingRepository(db, logger.NoOpLogger())

	mock.ExpectExec(`DELETE FROM "meetings" WHERE id = \$1 AND user_id = \$2`).
		WithArgs("01HZYMEET00000000000000001", ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), ownerID, "01HZYMEET00000000000000001"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeetingRepository_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMeetingRepository(db, logger.NoOpLogger())

	mock.ExpectExec(`DELETE FROM "meetings" WHERE id = \$1 AND user_id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), ownerID, "01HZYMEET000000000000MISSING")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
