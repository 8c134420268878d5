package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kindaboxs/meetboxs/contracts"
	"github.com/kindaboxs/meetboxs/domain"
	"github.com/kindaboxs/meetboxs/domain/model"
	"github.com/kindaboxs/meetboxs/pkg/logger"
)

const (
	testOwnerID    = "01HZYOWNER0000000000000001"
	testStrangerID = "01HZYSTRANGER0000000000001"
)

// stubAgentRepo is an in-memory repository.Agent with owner-scoped lookups
type stubAgentRepo struct {
	agents  map[string]*model.Agent
	nextID  int
	listErr error
}

func newStubAgentRepo() *stubAgentRepo {
	return &stubAgentRepo{agents: map[string]*model.Agent{}}
}

func (r *stubAgentRepo) seed(ownerID, name string) *model.Agent {
	r.nextID++
	agent := &model.Agent{
		ID:           fmt.Sprintf("01HZYAGENT%016d", r.nextID),
		UserID:       ownerID,
		Name:         name,
		Instructions: "You are " + name,
	}
	r.agents[agent.ID] = agent
	return agent
}

func (r *stubAgentRepo) Create(_ context.Context, agent *model.Agent) error {
	r.nextID++
	agent.ID = fmt.Sprintf("01HZYAGENT%016d", r.nextID)
	r.agents[agent.ID] = agent
	return nil
}

func (r *stubAgentRepo) GetByID(_ context.Context, ownerID, id string) (*model.Agent, error) {
	agent, ok := r.agents[id]
	if !ok || agent.UserID != ownerID {
		return nil, domain.ErrNotFound
	}
	copied := *agent
	return &copied, nil
}

func (r *stubAgentRepo) List(_ context.Context, ownerID string, filter domain.AgentFilter, page domain.PageRequest) ([]*model.Agent, int, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	var matched []*model.Agent
	for _, agent := range r.agents {
		if agent.UserID != ownerID {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(agent.Name), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, agent)
	}
	total := len(matched)
	offset := page.Offset()
	if offset >= total {
		return nil, total, nil
	}
	end := offset + page.Limit()
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (r *stubAgentRepo) Update(_ context.Context, agent *model.Agent) error {
	stored, ok := r.agents[agent.ID]
	if !ok || stored.UserID != agent.UserID {
		return domain.ErrNotFound
	}
	stored.Name = agent.Name
	stored.Instructions = agent.Instructions
	return nil
}

func (r *stubAgentRepo) Delete(_ context.Context, ownerID, id string) error {
	agent, ok := r.agents[id]
	if !ok || agent.UserID != ownerID {
		return domain.ErrNotFound
	}
	delete(r.agents, id)
	return nil
}

func TestAgentUseCase_ListAgents_PaginationMeta(t *testing.T) {
	repo := newStubAgentRepo()
	for i := 0; i < 25; i++ {
		repo.seed(testOwnerID, fmt.Sprintf("Agent %02d", i))
	}
	uc := NewAgentUseCase(repo, domain.DefaultPageBounds(), logger.NoOpLogger())

	resp, err := uc.ListAgents(context.Background(), testOwnerID, &contracts.ListAgentsRequest{Page: 3, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 5)
	assert.Equal(t, 25, resp.Total)
	assert.Equal(t, 3, resp.TotalPages)
}

func TestAgentUseCase_ListAgents_DefaultsApplied(t *testing.T) {
	repo := newStubAgentRepo()
	for i := 0; i < 12; i++ {
		repo.seed(testOwnerID, fmt.Sprintf("Agent %02d", i))
	}
	uc := NewAgentUseCase(repo, domain.DefaultPageBounds(), logger.NoOpLogger())

	resp, err := uc.ListAgents(context.Background(), testOwnerID, &contracts.ListAgentsRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 10)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, 1, resp.Page, "The resolved page should be echoed back")
	assert.Equal(t, 10, resp.PageSize, "The resolved page size should be echoed back")
}

func TestAgentUseCase_ListAgents_ConfiguredDefaultPageSizeEchoed(t *testing.T) {
	repo := newStubAgentRepo()
	for i := 0; i < 30; i++ {
		repo.seed(testOwnerID, fmt.Sprintf("Agent %02d", i))
	}
	bounds := domain.PageBounds{DefaultPage: 1, DefaultPageSize: 25, MinPageSize: 1, MaxPageSize: 50}
	uc := NewAgentUseCase(repo, bounds, logger.NoOpLogger())

	resp, err := uc.ListAgents(context.Background(), testOwnerID, &contracts.ListAgentsRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 25)
	assert.Equal(t, 25, resp.PageSize, "The configured default page size should flow through")
	assert.Equal(t, 2, resp.TotalPages)
}

func TestAgentUseCase_ListAgents_RejectsOutOfRangePageSize(t *testing.T) {
	uc := NewAgentUseCase(newStubAgentRepo(), domain.DefaultPageBounds(), logger.NoOpLogger())

	_, err := uc.ListAgents(context.Background(), testOwnerID, &contracts.ListAgentsRequest{PageSize: 101})
	assert.ErrorIs(t, err, domain.ErrInvalidPageSize)

	_, err = uc.ListAgents(context.Background(), testOwnerID, &contracts.ListAgentsRequest{Page: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidPage)
}

func TestAgentUseCase_ListAgents_ScopedToCaller(t *testing.T) {
	repo := newStubAgentRepo()
	repo.seed(testOwnerID, "Mine")
	repo.seed(testStrangerID, "Theirs")
	uc := NewAgentUseCase(repo, domain.DefaultPageBounds(), logger.NoOpLogger())

	resp, err := uc.ListAgents(context.Background(), testOwnerID, &contracts.ListAgentsRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, "Mine", resp.Items[0].Name)
}

func TestAgentUseCase_ListAgents_SearchIsCaseInsensitive(t *testing.T) {
	repo := newStubAgentRepo()
	target := repo.seed(testOwnerID, "Sprint planning bot")
	repo.seed(testOwnerID, "Daily helper")
	uc := NewAgentUseCase(repo, domain.DefaultPageBounds(), logger.NoOpLogger())

	for _, search := range []string{"sprint", "SPRINT", "Sprint"} {
		resp, err := uc.ListAgents(context.Background(), testOwnerID, &contracts.ListAgentsRequest{Search: search})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1, "search %q should match regardless of casing", search)
		assert.Equal(t, target.ID, resp.Items[0].ID)
	}
}

func TestAgentUseCase_GetAgentByID_ForeignOwnerHidden(t *testing.T) {
	repo := newStubAgentRepo()
	agent := repo.seed(testOwnerID, "Mine")
	uc := NewAgentUseCase(repo, domain.DefaultPageBounds(), logger.NoOpLogger())

	_, err := uc.GetAgentByID(context.Background(), testStrangerID, agent.ID)
	assert.ErrorIs(t, err, domain.ErrAgentNotFound)

	got, err := uc.GetAgentByID(context.Background(), testOwnerID, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, agent.ID, got.ID)
}

func TestAgentUseCase_CreateAgent(t *testing.T) {
	repo := newStubAgentRepo()
	uc := NewAgentUseCase(repo, domain.DefaultPageBounds(), logger.NoOpLogger())

	agent, err := uc.CreateAgent(context.Background(), testOwnerID, &contracts.CreateAgentRequest{
		Name:         "Math tutor",
		Instructions: "Teach math",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, agent.ID)
	assert.Equal(t, testOwnerID, agent.UserID)
}

func TestAgentUseCase_CreateAgent_ValidatesRequiredFields(t *testing.T) {
	uc := NewAgentUseCase(newStubAgentRepo(), domain.DefaultPageBounds(), logger.NoOpLogger())

	_, err := uc.CreateAgent(context.Background(), testOwnerID, &contracts.CreateAgentRequest{Instructions: "x"})
	assert.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = uc.CreateAgent(context.Background(), testOwnerID, &contracts.CreateAgentRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrInstructionsRequired)
}

func TestAgentUseCase_UpdateAgent_PartialMerge(t *testing.T) {
	repo := newStubAgentRepo()
	agent := repo.seed(testOwnerID, "Old name")
	uc := NewAgentUseCase(repo, domain.DefaultPageBounds(), logger.NoOpLogger())

	newName := "New name"
	updated, err := uc.UpdateAgent(context.Background(), testOwnerID, &contracts.UpdateAgentRequest{
		ID:   agent.ID,
		Name: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "New name", updated.Name)
	assert.Equal(t, agent.Instructions, updated.Instructions, "Omitted fields keep their stored values")
}

func TestAgentUseCase_UpdateAgent_ForeignOwnerHidden(t *testing.T) {
	repo := newStubAgentRepo()
	agent := repo.seed(testOwnerID, "Mine")
	uc := NewAgentUseCase(repo, domain.DefaultPageBounds(), logger.NoOpLogger())

	newName := "Hijacked"
	_, err := uc.UpdateAgent(context.Background(), testStrangerID, &contracts.UpdateAgentRequest{
		ID:   agent.ID,
		Name: &newName,
	})
	assert.ErrorIs(t, err, domain.ErrAgentNotFound)
	assert.Equal(t, "Mine", repo.agents[agent.ID].Name)
}

func TestAgentUseCase_DeleteAgent_ReturnsPriorState(t *testing.T) {
	repo := newStubAgentRepo()
	agent := repo.seed(testOwnerID, "Mine")
	uc := NewAgentUseCase(repo, domain.DefaultPageBounds(), logger.NoOpLogger())

	deleted, err := uc.DeleteAgent(context.Background(), testOwnerID, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, agent.ID, deleted.ID)
	assert.Equal(t, "Mine", deleted.Name, "The deleted row's prior state should be returned")

	_, err = uc.DeleteAgent(context.Background(), testOwnerID, agent.ID)
	assert.ErrorIs(t, err, domain.ErrAgentNotFound)
}
