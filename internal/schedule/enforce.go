package schedule

import (
	"fmt"

	"github.com/mkrogh/studyplan/internal/domain"
)

// Risk flag types attached by enforcement.
const (
	FlagConstraintViolation = "Constraint violation"
	FlagCapacityLimit       = "Capacity limit"
)

// Enforce rewrites a plan's weekly hour allocations so no week exceeds
// maxHoursPerWeek. Hours removed from over-cap weeks are redistributed
// greedily into earlier-listed weeks with spare room; whatever cannot be
// placed is dropped. The overview total is recomputed from the final
// allocations rather than trusted from the model. Enforce never fails and
// returns a new plan; the input is left untouched.
func Enforce(p domain.Plan, maxHoursPerWeek float64) domain.Plan {
	out := p.Clone()
	if maxHoursPerWeek < 0 {
		maxHoursPerWeek = 0
	}

	// Pass 1: clamp every week into [0, cap], collecting the surplus.
	surplus := 0.0
	overCap := false
	for i := range out.WeeklySchedule {
		hours := out.WeeklySchedule[i].HoursPlanned
		if hours < 0 {
			hours = 0
		}
		if hours > maxHoursPerWeek {
			surplus += hours - maxHoursPerWeek
			hours = maxHoursPerWeek
			overCap = true
		}
		out.WeeklySchedule[i].HoursPlanned = hours
	}

	// Pass 2: pour the surplus back into weeks with room, in list order.
	// Deliberately greedy and order-dependent so results are reproducible.
	for i := range out.WeeklySchedule {
		if surplus <= 0 {
			break
		}
		room := maxHoursPerWeek - out.WeeklySchedule[i].HoursPlanned
		if room <= 0 {
			continue
		}
		moved := room
		if surplus < moved {
			moved = surplus
		}
		out.WeeklySchedule[i].HoursPlanned += moved
		surplus -= moved
	}

	total := 0.0
	for _, w := range out.WeeklySchedule {
		total += w.HoursPlanned
	}
	out.Overview.TotalHours = total

	if overCap {
		out.RiskFlags = prependFlag(out.RiskFlags, domain.RiskFlag{
			Type: FlagConstraintViolation,
			Description: fmt.Sprintf(
				"One or more weeks were planned above the %g hour weekly limit and have been rebalanced.",
				maxHoursPerWeek),
			Suggestion: "Review the adjusted weeks and move milestones if the new split does not fit.",
		})
	}
	if surplus > 0 {
		out.RiskFlags = prependFlag(out.RiskFlags, domain.RiskFlag{
			Type: FlagCapacityLimit,
			Description: fmt.Sprintf(
				"The plan asked for %g more hours than %d weeks at %g hours each can hold; the excess was dropped.",
				surplus, len(out.WeeklySchedule), maxHoursPerWeek),
			Suggestion: "Add more weeks, raise the weekly hour cap, or cut topics.",
		})
	}

	return out
}

func prependFlag(flags []domain.RiskFlag, f domain.RiskFlag) []domain.RiskFlag {
	out := make([]domain.RiskFlag, 0, len(flags)+1)
	out = append(out, f)
	return append(out, flags...)
}
