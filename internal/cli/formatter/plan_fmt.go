package formatter

import (
	"fmt"
	"strings"

	"github.com/mkrogh/studyplan/internal/domain"
	"github.com/mkrogh/studyplan/internal/schedule"
)

// FormatPlan renders a full study plan: overview, priorities,
// prerequisites, the weekly table, and risk flags.
func FormatPlan(plan domain.Plan) string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render("Study Plan"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %d\n", StyleBold.Render("Weeks:"), plan.Overview.TotalWeeks)
	fmt.Fprintf(&b, "%s %g\n", StyleBold.Render("Total hours:"), plan.Overview.TotalHours)
	fmt.Fprintf(&b, "%s %d\n", StyleBold.Render("Topics:"), plan.Overview.TopicCount)
	if plan.Overview.Summary != "" {
		b.WriteString(plan.Overview.Summary)
		b.WriteString("\n")
	}

	if len(plan.Deadlines) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleHeader.Render("Deadlines"))
		b.WriteString("\n")
		for _, d := range plan.Deadlines {
			fmt.Fprintf(&b, "  %s  %s (week %d)\n", StyleBlue.Render(d.Date), d.Title, d.Week)
		}
	}

	if len(plan.TopicPriorities) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleHeader.Render("Priorities"))
		b.WriteString("\n")
		for _, tp := range plan.TopicPriorities {
			badge := PriorityStyle(tp.Priority).Render(string(tp.Priority))
			fmt.Fprintf(&b, "  %s [%s] %s\n", StyleBold.Render(tp.Topic), badge, tp.Reason)
		}
	}

	if len(plan.Prerequisites) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleHeader.Render("Prerequisites"))
		b.WriteString("\n")
		for _, pr := range plan.Prerequisites {
			deps := "none"
			if len(pr.DependsOn) > 0 {
				deps = strings.Join(pr.DependsOn, ", ")
			}
			fmt.Fprintf(&b, "  %s depends on: %s\n", StyleBold.Render(pr.Topic), deps)
		}
	}

	if len(plan.WeeklySchedule) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleHeader.Render("Weekly Schedule"))
		b.WriteString("\n")

		rows := make([][]string, len(plan.WeeklySchedule))
		for i, w := range plan.WeeklySchedule {
			rows[i] = []string{
				fmt.Sprintf("%d", w.Week),
				strings.Join(w.FocusTopics, ", "),
				fmt.Sprintf("%g", w.HoursPlanned),
				strings.Join(w.Milestones, "; "),
			}
		}
		b.WriteString(RenderTable([]string{"Week", "Focus Topics", "Hours", "Milestones"}, rows))
	}

	b.WriteString("\n")
	b.WriteString(FormatRiskFlags(plan.RiskFlags))

	return b.String()
}

// FormatRiskFlags renders the risk section, or a calm note when empty.
func FormatRiskFlags(flags []domain.RiskFlag) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render("Risk Flags"))
	b.WriteString("\n")
	if len(flags) == 0 {
		b.WriteString(StyleDim.Render("  No risks detected."))
		b.WriteString("\n")
		return b.String()
	}
	for _, f := range flags {
		fmt.Fprintf(&b, "  %s %s\n", StyleRed.Render("▲ "+f.Type+":"), f.Description)
		if f.Suggestion != "" {
			fmt.Fprintf(&b, "    %s\n", StyleDim.Render("Suggestion: "+f.Suggestion))
		}
	}
	return b.String()
}

// FormatDays renders the per-day breakdown of one week.
func FormatDays(week int, days []schedule.DayPlan) string {
	var b strings.Builder

	b.WriteString(StyleHeader.Render(fmt.Sprintf("Week %d day by day", week)))
	b.WriteString("\n")

	rows := make([][]string, len(days))
	for i, d := range days {
		rows[i] = []string{d.Day, fmt.Sprintf("%d", d.Hours), strings.Join(d.Topics, ", ")}
	}
	b.WriteString(RenderTable([]string{"Day", "Hours", "Topics"}, rows))

	return b.String()
}

// FormatRaw renders an unparseable model answer with a notice so students
// still see what came back.
func FormatRaw(raw string) string {
	var b strings.Builder
	b.WriteString(StyleYellow.Render("The model's answer was not valid JSON; showing it as plain text."))
	b.WriteString("\n\n")
	b.WriteString(raw)
	b.WriteString("\n")
	return b.String()
}
