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

const (
	ownerID   = "01HZY0000000000000000OWNER"
	strangerID = "01HZY000000000000000OTHERS"
)

func agentRows(ids ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "instructions", "created_at", "updated_at", "meeting_count"})
	for _, id := range ids {
		rows.AddRow(id, ownerID, "Agent "+id, "Be helpful", time.Now(), time.Now(), 2)
	}
	return rows
}

func TestAgentRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAgentRepository(db, logger.NoOpLogger())

	mock.ExpectQuery(`SELECT agents\..+meeting_count FROM "agents" WHERE agents\.id = \$1 AND agents\.user_id = \$2`).
		WillReturnRows(agentRows("01HZYAGENT0000000000000001"))

	agent, err := repo.GetByID(context.Background(), ownerID, "01HZYAGENT0000000000000001")
	require.NoError(t, err)
	assert.Equal(t, "01HZYAGENT0000000000000001", agent.ID)
	assert.Equal(t, ownerID, agent.UserID)
	assert.Equal(t, int64(2), agent.MeetingCount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgentRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAgentRepository(db, logger.NoOpLogger())

	mock.ExpectQuery(`SELECT agents\..+ FROM "agents" WHERE agents\.id = \$1 AND agents\.user_id = \$2`).
		WillReturnRows(agentRows())

	_, err := repo.GetByID(context.Background(), ownerID, "01HZYAGENT00000000000MISSING")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// A row owned by someone else must be exactly as invisible as a missing row:
// the owner predicate is part of the statement, so the database returns
// nothing and the repository reports ErrNotFound either way
func TestAgentRepository_GetByID_ForeignOwnerHidden(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAgentRepository(db, logger.NoOpLogger())

	mock.ExpectQuery(`SELECT agents\..+ FROM "agents" WHERE agents\.id = \$1 AND agents\.user_id = \$2`).
		WillReturnRows(agentRows())

	_, err := repo.GetByID(context.Background(), strangerID, "01HZYAGENT0000000000000001")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgentRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAgentRepository(db, logger.NoOpLogger())

	page, err := domain.DefaultPageBounds().Resolve(1, 10)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT agents\..+meeting_count.+ FROM "agents" WHERE agents\.user_id = \$1 ORDER BY agents\.created_at DESC, agents\.id DESC LIMIT`).
		WillReturnRows(agentRows("01HZYAGENT0000000000000002", "01HZYAGENT0000000000000001"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "agents" WHERE agents\.user_id = \$1`).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	agents, total, err := repo.List(context.Background(), ownerID, domain.AgentFilter{}, page)
	require.NoError(t, err)
	assert.Len(t, agents, 2)
	assert.Equal(t, 2, total)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// The search filter must appear as a case-insensitive substring match in the
// page query and the count query alike; when it is empty neither statement
// may mention the name column at all
func TestAgentRepository_List_SearchPredicateParity(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAgentRepository(db, logger.NoOpLogger())

	page, err := domain.DefaultPageBounds().Resolve(1, 10)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT agents\..+ FROM "agents" WHERE agents\.user_id = \$1 AND agents\.name ILIKE \$2 ORDER BY`).
		WillReturnRows(agentRows("01HZYAGENT0000000000000001"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "agents" WHERE agents\.user_id = \$1 AND agents\.name ILIKE \$2`).
		WithArgs(ownerID, "%Sprint%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, total, err := repo.List(context.Background(), ownerID, domain.AgentFilter{Search: "Sprint"}, page)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgentRepository_List_PageBeyondRangeIsEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAgentRepository(db, logger.NoOpLogger())

	page, err := domain.DefaultPageBounds().Resolve(9, 10)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT agents\..+ FROM "agents" WHERE agents\.user_id = \$1 ORDER BY .+ LIMIT .+ OFFSET`).
		WillReturnRows(agentRows())
	mock.ExpectQuery(`SELECT count\(\*\) FROM "agents" WHERE agents\.user_id = \$1`).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	agents, total, err := repo.List(context.Background(), ownerID, domain.AgentFilter{}, page)
	require.NoError(t, err)
	assert.Empty(t, agents, "A page beyond the data must be empty, not an error")
	assert.Equal(t, 2, total)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgentRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAgentRepository(db, logger.NoOpLogger())

	mock.ExpectExec(`UPDATE "agents" SET .+ WHERE id = \$\d+ AND user_id = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &model.Agent{
		ID:           "01HZYAGENT0000000000000001",
		UserID:       ownerID,
		Name:         "Renamed",
		Instructions: "Be terse",
	})
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgentRepository_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAgentRepository(db, logger.NoOpLogger())

	mock.ExpectExec(`UPDATE "agents" SET .+ WHERE id = \$\d+ AND user_id = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &model.Agent{
		ID:           "01HZYAGENT00000000000MISSING",
		UserID:       ownerID,
		Name:         "Renamed",
		Instructions: "Be terse",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgentRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAgentRepository(db, logger.NoOpLogger())

	mock.ExpectExec(`DELETE FROM "agents" WHERE id = \$1 AND user_id = \$2`).
		WithArgs("01HZYAGENT0000000000000001", ownerID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), ownerID, "01HZYAGENT0000000000000001")
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// A second delete of the same id affects zero rows and must surface
// ErrNotFound rather than succeeding silently
func TestAgentRepository_Delete_SecondCallNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAgentRepository(db, logger.NoOpLogger())

	mock.ExpectExec(`DELETE FROM "agents" WHERE id = \$1 AND user_id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "agents" WHERE id = \$1 AND user_id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), ownerID, "01HZYAGENT0000000000000001"))

	err := repo.Delete(context.Background(), ownerID, "01HZYAGENT0000000000000001")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
