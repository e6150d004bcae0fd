package intelligence

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mkrogh/studyplan/internal/domain"
	"github.com/mkrogh/studyplan/internal/llm"
)

const planSystemPrompt = `You are a helpful study assistant who creates realistic, well-structured study plans for university students.`

const planSchema = `{
  "overview": {
    "total_weeks": number,
    "total_hours": number,
    "topic_count": number,
    "summary": string
  },
  "deadlines": [
    { "date": "YYYY-MM-DD", "title": string, "week": number }
  ],
  "topic_priorities": [
    { "topic": string, "priority": "high" | "medium" | "low", "reason": string }
  ],
  "prerequisites": [
    { "topic": string, "depends_on": [string] }
  ],
  "weekly_schedule": [
    {
      "week": number,
      "focus_topics": [string],
      "hours_planned": number,
      "milestones": [string]
    }
  ],
  "risk_flags": [
    { "type": string, "description": string, "suggestion": string }
  ]
}`

// BuildPlanPrompt renders the user prompt for one generation request: the
// student's situation plus the required response schema.
func BuildPlanPrompt(input domain.GenerationInput) string {
	var b strings.Builder

	b.WriteString("You are a study coach helping a university student build a realistic, evidence-based study plan.\n")
	b.WriteString("Apply principles of time management, topic prioritization, and reduction of academic stress.\n\n")

	b.WriteString("INPUT (from the student):\n")
	fmt.Fprintf(&b, "- Topics: %s\n", asJSON(input.CleanTopics()))
	if difficult := input.CleanDifficultTopics(); len(difficult) > 0 {
		fmt.Fprintf(&b, "- Topics the student finds difficult: %s\n", asJSON(difficult))
	}
	fmt.Fprintf(&b, "- Deadlines: %s\n", asJSON(input.CleanDeadlines()))
	fmt.Fprintf(&b, "- Weeks of study: %d\n", input.Weeks)
	fmt.Fprintf(&b, "- Hours available per week: %g\n", input.HoursPerWeek)
	fmt.Fprintf(&b, "- Extra context: %s\n", asJSON(strings.TrimSpace(input.Context)))

	b.WriteString("\nREQUIREMENTS FOR THE PLAN:\n")
	fmt.Fprintf(&b, "1. Respect the hours per week. Never plan more than %g hours in any single week.\n", input.HoursPerWeek)
	b.WriteString("2. Break large tasks into smaller steps.\n")
	fmt.Fprintf(&b, "3. Plan in weeks (week 1, week 2, ... week %d).\n", input.Weeks)
	b.WriteString("4. Prioritize topics by importance and difficulty; give difficult topics extra time.\n")
	b.WriteString("5. Highlight risks (deadlines close together, hard material, too few hours).\n")

	b.WriteString("\nRESPONSE FORMAT:\n")
	b.WriteString("Return ONLY valid JSON (no explanatory text outside the JSON), with this structure:\n")
	b.WriteString(planSchema)

	return b.String()
}

// PlanMessages assembles the role-tagged message sequence for one request.
func PlanMessages(input domain.GenerationInput) []llm.Message {
	return []llm.Message{
		{Role: "system", Content: planSystemPrompt},
		{Role: "user", Content: BuildPlanPrompt(input)},
	}
}

func asJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(data)
}
