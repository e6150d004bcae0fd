package domain

import "time"

// StoredPlan is the persisted record of the last successful generation.
// The input is kept alongside the plan so day views can be rebuilt after a
// restart without re-asking the student which topics were flagged difficult.
type StoredPlan struct {
	ID          string          `json:"id"`
	Input       GenerationInput `json:"input"`
	Plan        Plan            `json:"plan"`
	GeneratedAt time.Time       `json:"generated_at"`
}
