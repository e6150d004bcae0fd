package schedule

import "github.com/mkrogh/studyplan/internal/domain"

// StudyDays are the weekdays a week's hours are spread over.
var StudyDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// DayPlan is one day's slice of a week: the hours to study and the topics
// to spend them on.
type DayPlan struct {
	Day    string   `json:"day"`
	Hours  int      `json:"hours"`
	Topics []string `json:"topics"`
}

// PlanDays expands a week entry into per-day allocations over StudyDays.
// difficultTopics is the student's flagged list; it is passed explicitly
// rather than read off the plan.
func PlanDays(week domain.WeekEntry, difficultTopics []string) []DayPlan {
	hours := SplitHours(week.HoursPlanned, len(StudyDays))
	topics := AssignTopics(week.FocusTopics, difficultTopics, hours)

	days := make([]DayPlan, len(StudyDays))
	for i, name := range StudyDays {
		days[i] = DayPlan{Day: name, Hours: hours[i], Topics: topics[i]}
	}
	return days
}
