package intelligence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mkrogh/studyplan/internal/domain"
	"github.com/mkrogh/studyplan/internal/llm"
	"github.com/mkrogh/studyplan/internal/repository"
	"github.com/mkrogh/studyplan/internal/schedule"
	"github.com/mkrogh/studyplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelPlanJSON = `{
	"overview": {"total_weeks": 2, "total_hours": 99, "topic_count": 2, "summary": "Algebra first."},
	"weekly_schedule": [
		{"week": 1, "focus_topics": ["Algebra"], "hours_planned": 12, "milestones": ["Chapter 1"]},
		{"week": 2, "focus_topics": ["Statistics"], "hours_planned": 4, "milestones": []}
	],
	"risk_flags": []
}`

func validInput() domain.GenerationInput {
	return domain.GenerationInput{
		Topics:          []string{"Algebra", "Statistics"},
		DifficultTopics: []string{"algebra"},
		Weeks:           2,
		HoursPerWeek:    8,
	}
}

func newTestService(t *testing.T, client llm.ChatClient) (PlanService, repository.PlanRepo) {
	t.Helper()
	store := repository.NewSQLitePlanRepo(testutil.NewTestDB(t))
	return NewPlanService(client, store, nil), store
}

func TestPlanService_Generate_EnforcesAndPersists(t *testing.T) {
	client := &testutil.FakeChatClient{Responses: []string{modelPlanJSON}}
	svc, store := newTestService(t, client)

	result, err := svc.Generate(context.Background(), validInput())
	require.NoError(t, err)
	require.True(t, result.Parsed)

	// Week 1 asked for 12h against a cap of 8; the extra 4 move to week 2.
	require.Len(t, result.Plan.WeeklySchedule, 2)
	assert.Equal(t, 8.0, result.Plan.WeeklySchedule[0].HoursPlanned)
	assert.Equal(t, 8.0, result.Plan.WeeklySchedule[1].HoursPlanned)
	assert.Equal(t, 16.0, result.Plan.Overview.TotalHours, "model's stated total must be recomputed")
	require.NotEmpty(t, result.Plan.RiskFlags)
	assert.Equal(t, schedule.FlagConstraintViolation, result.Plan.RiskFlags[0].Type)

	stored, err := store.LoadLast(context.Background())
	require.NoError(t, err)
	assert.Equal(t, result.Plan, stored.Plan)
	assert.Equal(t, validInput().Topics, stored.Input.Topics)
}

func TestPlanService_Generate_UnparseableKeepsRawText(t *testing.T) {
	client := &testutil.FakeChatClient{Responses: []string{"I cannot produce JSON today."}}
	svc, store := newTestService(t, client)

	result, err := svc.Generate(context.Background(), validInput())
	require.NoError(t, err)
	assert.False(t, result.Parsed)
	assert.Equal(t, "I cannot produce JSON today.", result.Raw)

	_, err = store.LoadLast(context.Background())
	assert.True(t, errors.Is(err, repository.ErrNotFound), "unparseable output must not be persisted")
}

func TestPlanService_Generate_TransportFailure(t *testing.T) {
	client := &testutil.FakeChatClient{Err: llm.ErrProviderUnavailable}
	svc, _ := newTestService(t, client)

	_, err := svc.Generate(context.Background(), validInput())
	assert.True(t, errors.Is(err, llm.ErrProviderUnavailable))
}

func TestPlanService_Generate_RejectsInvalidInput(t *testing.T) {
	svc, _ := newTestService(t, &testutil.FakeChatClient{Responses: []string{modelPlanJSON}})

	_, err := svc.Generate(context.Background(), domain.GenerationInput{Weeks: 2, HoursPerWeek: 8})
	assert.Error(t, err)
}

// blockingClient holds each call until released, for interleaving tests.
type blockingClient struct {
	mu      sync.Mutex
	waiting []chan struct{}
	reply   string
}

func (c *blockingClient) Complete(ctx context.Context, _ []llm.Message) (*llm.ChatResponse, error) {
	c.mu.Lock()
	gate := make(chan struct{})
	c.waiting = append(c.waiting, gate)
	c.mu.Unlock()

	select {
	case <-gate:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &llm.ChatResponse{Content: c.reply, Model: "fake-model"}, nil
}

func (c *blockingClient) release(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	close(c.waiting[i])
}

func TestPlanService_Generate_StaleResponseDiscarded(t *testing.T) {
	client := &blockingClient{reply: modelPlanJSON}
	svc, _ := newTestService(t, client)

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Generate(context.Background(), validInput())
		firstDone <- err
	}()

	// Wait for the first call to be in flight, then run a second one to
	// completion before releasing the first.
	for {
		client.mu.Lock()
		n := len(client.waiting)
		client.mu.Unlock()
		if n == 1 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	secondDone := make(chan error, 1)
	go func() {
		_, err := svc.Generate(context.Background(), validInput())
		secondDone <- err
	}()
	for {
		client.mu.Lock()
		n := len(client.waiting)
		client.mu.Unlock()
		if n == 2 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	client.release(1)
	require.NoError(t, <-secondDone)

	client.release(0)
	err := <-firstDone
	assert.True(t, errors.Is(err, ErrSuperseded))
}
