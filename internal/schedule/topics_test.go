package schedule

import (
	"testing"

	"github.com/mkrogh/studyplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countDaysWith(days [][]string, topic string) int {
	n := 0
	for _, day := range days {
		if containsTopic(day, topic) {
			n++
		}
	}
	return n
}

func TestAssignTopics_DifficultTopicCoversTargetDays(t *testing.T) {
	days := AssignTopics(
		[]string{"A", "B", "C"},
		[]string{"b"}, // case differs from the focus list on purpose
		[]int{4, 4, 3, 3, 3},
	)

	require.Len(t, days, 5)
	// Target for 5 days: max(3, ceil(5*0.6)) = 3.
	assert.GreaterOrEqual(t, countDaysWith(days, "B"), 3)
}

func TestAssignTopics_EmptyFocusYieldsEmptyDays(t *testing.T) {
	days := AssignTopics(nil, []string{"x"}, []int{3, 3, 3})
	require.Len(t, days, 3)
	for _, day := range days {
		assert.Empty(t, day)
	}
}

func TestAssignTopics_NoDuplicateTopicPerDay(t *testing.T) {
	days := AssignTopics([]string{"A"}, []string{"a"}, []int{2, 2})
	for _, day := range days {
		seen := map[string]bool{}
		for _, topic := range day {
			key := domain.TopicKey(topic)
			assert.False(t, seen[key], "topic %q listed twice in one day", topic)
			seen[key] = true
		}
	}
}

func TestAssignTopics_HighestHourDaysFilledFirst(t *testing.T) {
	days := AssignTopics([]string{"A", "B"}, nil, []int{1, 5})

	// The first slot goes to the day with the most hours.
	assert.Equal(t, []string{"A"}, days[1])
	assert.Equal(t, []string{"B"}, days[0])
}

func TestAssignTopics_TiesBrokenByDayOrder(t *testing.T) {
	days := AssignTopics([]string{"A", "B"}, nil, []int{3, 3, 3})

	assert.Equal(t, []string{"A"}, days[0])
	assert.Equal(t, []string{"B"}, days[1])
}

func TestAssignTopics_NoDifficultTopicsRoundRobins(t *testing.T) {
	days := AssignTopics([]string{"A", "B"}, nil, []int{2, 2, 2, 2})

	require.Len(t, days, 4)
	// Padding cycles over all topics once the base list is exhausted.
	assert.Equal(t, 2, countDaysWith(days, "A"))
	assert.Equal(t, 2, countDaysWith(days, "B"))
}

func TestAssignTopics_Deterministic(t *testing.T) {
	focus := []string{"Algebra", "Statistics", "Probability"}
	difficult := []string{" statistics "}
	hours := []int{4, 3, 3, 3, 4}

	first := AssignTopics(focus, difficult, hours)
	second := AssignTopics(focus, difficult, hours)
	assert.Equal(t, first, second)
}

func TestDifficultDayTarget(t *testing.T) {
	assert.Equal(t, 3, difficultDayTarget(3))
	assert.Equal(t, 3, difficultDayTarget(5))
	assert.Equal(t, 5, difficultDayTarget(7))
}
