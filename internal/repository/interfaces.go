package repository

import (
	"context"
	"errors"

	"github.com/mkrogh/studyplan/internal/domain"
)

// ErrNotFound is returned when no plan has been stored yet. A corrupt
// stored payload is reported the same way: to a caller there is no usable
// prior plan in either case.
var ErrNotFound = errors.New("not found")

// PlanRepo persists the last successfully generated plan. Saving is
// best-effort from the caller's point of view; a failed save never aborts a
// generation cycle.
type PlanRepo interface {
	SaveLast(ctx context.Context, record *domain.StoredPlan) error
	LoadLast(ctx context.Context) (*domain.StoredPlan, error)
}
