package intelligence

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mkrogh/studyplan/internal/domain"
	"github.com/mkrogh/studyplan/internal/llm"
	"github.com/mkrogh/studyplan/internal/repository"
	"github.com/mkrogh/studyplan/internal/schedule"
	"go.uber.org/zap"
)

// ErrSuperseded is returned when a generation finishes after a later one
// has already delivered its result. The original had no defined behavior
// for overlapping submissions; here the newest completed generation wins
// and stale results are dropped explicitly.
var ErrSuperseded = errors.New("generation superseded by a newer request")

// GenerationResult is the outcome of one generation cycle. When the model's
// answer could not be decoded, Parsed is false and Raw still carries the
// full text so the caller can show it instead of failing silently.
type GenerationResult struct {
	Plan        domain.Plan
	Raw         string
	Parsed      bool
	Epoch       uint64
	GeneratedAt time.Time
}

// PlanService runs the full generation pipeline: prompt, model call, parse,
// constraint enforcement, persistence.
type PlanService interface {
	// Generate produces a plan for the given input. Transport failures are
	// returned as errors; unparseable model output is not.
	Generate(ctx context.Context, input domain.GenerationInput) (*GenerationResult, error)

	// Last returns the most recently persisted plan.
	Last(ctx context.Context) (*domain.StoredPlan, error)
}

type planService struct {
	client llm.ChatClient
	store  repository.PlanRepo
	log    *zap.Logger

	mu      sync.Mutex
	issued  uint64
	applied uint64
}

// NewPlanService creates a PlanService backed by the given model client and
// plan store.
func NewPlanService(client llm.ChatClient, store repository.PlanRepo, log *zap.Logger) PlanService {
	if log == nil {
		log = zap.NewNop()
	}
	return &planService{client: client, store: store, log: log}
}

func (s *planService) Generate(ctx context.Context, input domain.GenerationInput) (*GenerationResult, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generation input: %w", err)
	}

	epoch := s.claimEpoch()

	resp, err := s.client.Complete(ctx, PlanMessages(input))
	if err != nil {
		return nil, fmt.Errorf("plan generation failed: %w", err)
	}

	if !s.commitEpoch(epoch) {
		s.log.Info("discarding stale generation result", zap.Uint64("epoch", epoch))
		return nil, ErrSuperseded
	}

	result := &GenerationResult{
		Raw:         resp.Content,
		Epoch:       epoch,
		GeneratedAt: time.Now().UTC(),
	}

	plan, err := llm.ParsePlan(resp.Content)
	var parseErr *llm.ParseError
	if errors.As(err, &parseErr) {
		s.log.Warn("model response is not a structured plan, keeping raw text",
			zap.Uint64("epoch", epoch), zap.Int("raw_len", len(parseErr.Raw)))
		return result, nil
	}

	result.Plan = schedule.Enforce(plan, input.HoursPerWeek)
	result.Parsed = true

	s.persist(ctx, input, result)
	return result, nil
}

func (s *planService) Last(ctx context.Context) (*domain.StoredPlan, error) {
	return s.store.LoadLast(ctx)
}

// persist saves the enforced plan best-effort. Persistence is an
// enhancement; a failed save never fails the generation.
func (s *planService) persist(ctx context.Context, input domain.GenerationInput, result *GenerationResult) {
	record := &domain.StoredPlan{
		ID:          uuid.NewString(),
		Input:       input,
		Plan:        result.Plan,
		GeneratedAt: result.GeneratedAt,
	}
	if err := s.store.SaveLast(ctx, record); err != nil {
		s.log.Warn("failed to persist generated plan", zap.Error(err))
	}
}

func (s *planService) claimEpoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// commitEpoch reports whether this generation is still the newest to
// complete. Epochs commit monotonically: once a later generation has
// landed, earlier ones are stale.
func (s *planService) commitEpoch(epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch <= s.applied {
		return false
	}
	s.applied = epoch
	return true
}
