package domain

// Priority classifies how urgently a topic should be studied.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Overview summarizes a generated plan.
type Overview struct {
	TotalWeeks int     `json:"total_weeks"`
	TotalHours float64 `json:"total_hours"`
	TopicCount int     `json:"topic_count"`
	Summary    string  `json:"summary"`
}

// Deadline is a dated milestone the plan must work towards.
type Deadline struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Week  int    `json:"week"`
}

// TopicPriority records the model's priority judgement for one topic.
type TopicPriority struct {
	Topic    string   `json:"topic"`
	Priority Priority `json:"priority"`
	Reason   string   `json:"reason"`
}

// Prerequisite records which topics should be studied before another.
type Prerequisite struct {
	Topic     string   `json:"topic"`
	DependsOn []string `json:"depends_on"`
}

// WeekEntry is one week's slice of the schedule. Week numbers come from the
// model and are not guaranteed contiguous or unique.
type WeekEntry struct {
	Week         int      `json:"week"`
	FocusTopics  []string `json:"focus_topics"`
	HoursPlanned float64  `json:"hours_planned"`
	Milestones   []string `json:"milestones"`
}

// RiskFlag is a structured warning about a scheduling problem.
type RiskFlag struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion"`
}

// Plan is the normalized study schedule produced by one generation cycle.
type Plan struct {
	Overview        Overview        `json:"overview"`
	Deadlines       []Deadline      `json:"deadlines,omitempty"`
	TopicPriorities []TopicPriority `json:"topic_priorities"`
	Prerequisites   []Prerequisite  `json:"prerequisites"`
	WeeklySchedule  []WeekEntry     `json:"weekly_schedule"`
	RiskFlags       []RiskFlag      `json:"risk_flags"`
}

// Clone returns a deep copy of the plan. Enforcement works on copies so a
// caller's plan value is never mutated behind its back.
func (p Plan) Clone() Plan {
	out := p
	out.Deadlines = append([]Deadline(nil), p.Deadlines...)
	out.TopicPriorities = append([]TopicPriority(nil), p.TopicPriorities...)
	out.Prerequisites = make([]Prerequisite, len(p.Prerequisites))
	for i, pr := range p.Prerequisites {
		out.Prerequisites[i] = pr
		out.Prerequisites[i].DependsOn = append([]string(nil), pr.DependsOn...)
	}
	out.WeeklySchedule = make([]WeekEntry, len(p.WeeklySchedule))
	for i, w := range p.WeeklySchedule {
		out.WeeklySchedule[i] = w
		out.WeeklySchedule[i].FocusTopics = append([]string(nil), w.FocusTopics...)
		out.WeeklySchedule[i].Milestones = append([]string(nil), w.Milestones...)
	}
	out.RiskFlags = append([]RiskFlag(nil), p.RiskFlags...)
	return out
}
