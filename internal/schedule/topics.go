package schedule

import (
	"math"
	"sort"

	"github.com/mkrogh/studyplan/internal/domain"
)

// Weighting policy for student-flagged difficult topics. A difficult topic
// should show up on at least MinDifficultDays days, or on
// DifficultDayShare of the week's study days when that is larger. Roughly
// twice the attention an unflagged topic gets. Tuning these is a policy
// change, not a bug fix.
const (
	MinDifficultDays  = 3
	DifficultDayShare = 0.6
)

// AssignTopics spreads a week's focus topics over its study days. Difficult
// topics are matched case-insensitively with surrounding whitespace ignored,
// placed first, and repeated until the difficult-day target is met. Days
// with more hours available are filled first. The result always has one
// (possibly empty) topic list per entry in perDayHours, with no topic
// listed twice on the same day.
func AssignTopics(focusTopics, difficultTopics []string, perDayHours []int) [][]string {
	dayCount := len(perDayHours)
	days := make([][]string, dayCount)
	for i := range days {
		days[i] = []string{}
	}
	if dayCount == 0 || len(focusTopics) == 0 {
		return days
	}

	flagged := make(map[string]bool, len(difficultTopics))
	for _, d := range difficultTopics {
		if key := domain.TopicKey(d); key != "" {
			flagged[key] = true
		}
	}

	var difficult, normal []string
	for _, t := range focusTopics {
		if flagged[domain.TopicKey(t)] {
			difficult = append(difficult, t)
		} else {
			normal = append(normal, t)
		}
	}

	// Difficult topics first, then the rest, padded round-robin up to one
	// slot per day. Difficult topics get the padding slots until the
	// difficult-day target is reached.
	ordered := append(append([]string{}, difficult...), normal...)
	slots := append([]string{}, ordered...)

	target := 0
	if len(difficult) > 0 {
		target = difficultDayTarget(dayCount)
	}
	difficultSlots := len(difficult)

	di, ai := 0, 0
	for len(slots) < dayCount {
		if difficultSlots < target && len(difficult) > 0 {
			slots = append(slots, difficult[di%len(difficult)])
			di++
			difficultSlots++
			continue
		}
		slots = append(slots, ordered[ai%len(ordered)])
		ai++
	}

	// Days with the most hours get first pick of topics.
	order := make([]int, dayCount)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return perDayHours[order[a]] > perDayHours[order[b]]
	})

	for s, topic := range slots {
		day := order[s%dayCount]
		if !containsTopic(days[day], topic) {
			days[day] = append(days[day], topic)
		}
	}

	return days
}

func difficultDayTarget(dayCount int) int {
	share := int(math.Ceil(float64(dayCount) * DifficultDayShare))
	if share < MinDifficultDays {
		return MinDifficultDays
	}
	return share
}

func containsTopic(list []string, topic string) bool {
	key := domain.TopicKey(topic)
	for _, t := range list {
		if domain.TopicKey(t) == key {
			return true
		}
	}
	return false
}
