package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkrogh/studyplan/internal/config"
	"github.com/mkrogh/studyplan/internal/domain"
	"github.com/mkrogh/studyplan/internal/intelligence"
	"github.com/mkrogh/studyplan/internal/llm"
	"github.com/mkrogh/studyplan/internal/repository"
	"github.com/mkrogh/studyplan/internal/schedule"
	"github.com/mkrogh/studyplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelPlanJSON = `{
	"overview": {"total_weeks": 2, "total_hours": 12, "topic_count": 2, "summary": "Algebra first."},
	"weekly_schedule": [
		{"week": 1, "focus_topics": ["Algebra"], "hours_planned": 7, "milestones": ["Chapter 1"]},
		{"week": 2, "focus_topics": ["Statistics"], "hours_planned": 5, "milestones": []}
	],
	"risk_flags": []
}`

func newTestServer(t *testing.T, client llm.ChatClient) *Server {
	t.Helper()
	store := repository.NewSQLitePlanRepo(testutil.NewTestDB(t))
	plans := intelligence.NewPlanService(client, store, nil)
	return New(config.ServerConfig{AllowedOrigins: []string{"*"}}, plans, client, nil)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func generateBody() map[string]any {
	return map[string]any{
		"topics":           []string{"Algebra", "Statistics"},
		"difficult_topics": []string{"algebra"},
		"weeks":            2,
		"hours_per_week":   8,
	}
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t, &testutil.FakeChatClient{Responses: []string{"ok"}})

	rec := doJSON(t, s, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "running")
}

func TestServer_ChatProxy_PassThrough(t *testing.T) {
	client := &testutil.FakeChatClient{Responses: []string{"hello from the model"}}
	s := newTestServer(t, client)

	rec := doJSON(t, s, http.MethodPost, "/api/chat", map[string]any{
		"messages": []map[string]string{
			{"role": "system", "content": "be brief"},
			{"role": "user", "content": "hi"},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "hello from the model", resp["content"])

	require.Len(t, client.Calls, 1)
	assert.Equal(t, "system", client.Calls[0][0].Role)
}

func TestServer_ChatProxy_MessagesMustBeArray(t *testing.T) {
	s := newTestServer(t, &testutil.FakeChatClient{Responses: []string{"x"}})

	for _, body := range []any{
		map[string]any{},
		map[string]any{"messages": "not an array"},
		map[string]any{"messages": 42},
	} {
		rec := doJSON(t, s, http.MethodPost, "/api/chat", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestServer_ChatProxy_UpstreamFailure(t *testing.T) {
	s := newTestServer(t, &testutil.FakeChatClient{Err: llm.ErrProviderUnavailable})

	rec := doJSON(t, s, http.MethodPost, "/api/chat", map[string]any{
		"messages": []map[string]string{{"role": "user", "content": "hi"}},
	})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestServer_GeneratePlan(t *testing.T) {
	s := newTestServer(t, &testutil.FakeChatClient{Responses: []string{modelPlanJSON}})

	rec := doJSON(t, s, http.MethodPost, "/api/plan", generateBody())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Parsed bool        `json:"parsed"`
		Plan   domain.Plan `json:"plan"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Parsed)
	require.Len(t, resp.Plan.WeeklySchedule, 2)
	assert.Equal(t, 12.0, resp.Plan.Overview.TotalHours)
}

func TestServer_GeneratePlan_InvalidInput(t *testing.T) {
	s := newTestServer(t, &testutil.FakeChatClient{Responses: []string{modelPlanJSON}})

	rec := doJSON(t, s, http.MethodPost, "/api/plan", map[string]any{
		"topics": []string{}, "weeks": 2, "hours_per_week": 8,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_GeneratePlan_UnparseableOutput(t *testing.T) {
	s := newTestServer(t, &testutil.FakeChatClient{Responses: []string{"sorry, no plan"}})

	rec := doJSON(t, s, http.MethodPost, "/api/plan", generateBody())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Parsed bool   `json:"parsed"`
		Raw    string `json:"raw"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Parsed)
	assert.Equal(t, "sorry, no plan", resp.Raw)
}

func TestServer_GeneratePlan_TransportFailure(t *testing.T) {
	s := newTestServer(t, &testutil.FakeChatClient{Err: llm.ErrTimeout})

	rec := doJSON(t, s, http.MethodPost, "/api/plan", generateBody())
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestServer_LastPlan_NotFoundBeforeFirstGeneration(t *testing.T) {
	s := newTestServer(t, &testutil.FakeChatClient{Responses: []string{modelPlanJSON}})

	rec := doJSON(t, s, http.MethodGet, "/api/plan/last", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_LastPlan_ReturnsStoredPlan(t *testing.T) {
	s := newTestServer(t, &testutil.FakeChatClient{Responses: []string{modelPlanJSON}})

	require.Equal(t, http.StatusOK, doJSON(t, s, http.MethodPost, "/api/plan", generateBody()).Code)

	rec := doJSON(t, s, http.MethodGet, "/api/plan/last", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var record domain.StoredPlan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.Len(t, record.Plan.WeeklySchedule, 2)
	assert.Equal(t, []string{"Algebra", "Statistics"}, record.Input.Topics)
}

func TestServer_WeekDays(t *testing.T) {
	s := newTestServer(t, &testutil.FakeChatClient{Responses: []string{modelPlanJSON}})
	require.Equal(t, http.StatusOK, doJSON(t, s, http.MethodPost, "/api/plan", generateBody()).Code)

	rec := doJSON(t, s, http.MethodGet, "/api/plan/last/weeks/1/days", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Week int                `json:"week"`
		Days []schedule.DayPlan `json:"days"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Week)
	require.Len(t, resp.Days, len(schedule.StudyDays))

	total := 0
	for _, d := range resp.Days {
		total += d.Hours
	}
	assert.Equal(t, 7, total)
}

func TestServer_WeekDays_UnknownWeek(t *testing.T) {
	s := newTestServer(t, &testutil.FakeChatClient{Responses: []string{modelPlanJSON}})
	require.Equal(t, http.StatusOK, doJSON(t, s, http.MethodPost, "/api/plan", generateBody()).Code)

	rec := doJSON(t, s, http.MethodGet, "/api/plan/last/weeks/9/days", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
