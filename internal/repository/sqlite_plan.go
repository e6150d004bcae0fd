package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mkrogh/studyplan/internal/domain"
)

// lastPlanKey is the single row key under which the latest plan lives.
const lastPlanKey = "last"

// SQLitePlanRepo implements PlanRepo using a SQLite database.
type SQLitePlanRepo struct {
	db *sql.DB
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn *sql.DB) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

func (r *SQLitePlanRepo) SaveLast(ctx context.Context, record *domain.StoredPlan) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshaling plan record: %w", err)
	}

	query := `INSERT OR REPLACE INTO saved_plans (key, record_id, payload, generated_at)
		VALUES (?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		lastPlanKey,
		record.ID,
		string(payload),
		record.GeneratedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting last plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) LoadLast(ctx context.Context) (*domain.StoredPlan, error) {
	query := `SELECT payload FROM saved_plans WHERE key = ?`
	row := r.db.QueryRowContext(ctx, query, lastPlanKey)

	var payload string
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("last plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning last plan: %w", err)
	}

	var record domain.StoredPlan
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		// A corrupt stored value is indistinguishable from no stored plan.
		return nil, fmt.Errorf("last plan payload corrupt: %w", ErrNotFound)
	}
	return &record, nil
}
