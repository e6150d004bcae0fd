package llm

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mkrogh/studyplan/internal/domain"
)

// ParseError is returned when no decoding strategy produced a structured
// plan. It carries the original response text so callers can still show the
// model's answer instead of dropping it.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return "llm response is not a structured plan"
}

// ParsePlan turns raw model output into a Plan. Models routinely wrap JSON
// in prose or code fences, so decoding is attempted in stages, returning on
// the first success:
//
//  1. the trimmed text as-is,
//  2. the text with one leading fence marker (optionally tagged) and one
//     trailing fence stripped,
//  3. the slice from the first '{' to the last '}'.
//
// Field-level shape defects never fail the parse: missing or mistyped
// collections decode as empty, numbers as zero, strings as blank. Semantic
// checks are the enforcement layer's job.
func ParsePlan(raw string) (domain.Plan, error) {
	trimmed := strings.TrimSpace(raw)

	if plan, ok := decodePlan(trimmed); ok {
		return plan, nil
	}
	if plan, ok := decodePlan(stripFences(trimmed)); ok {
		return plan, nil
	}
	if plan, ok := decodePlan(sliceBraces(raw)); ok {
		return plan, nil
	}
	return domain.Plan{}, &ParseError{Raw: raw}
}

func decodePlan(s string) (domain.Plan, bool) {
	if s == "" {
		return domain.Plan{}, false
	}
	var doc planDocument
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		return domain.Plan{}, false
	}
	return doc.toDomain(), true
}

// stripFences removes one leading ``` marker (with an optional language tag
// running to the end of its line) and one trailing ``` marker.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = s[len("```"):]
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && isFenceTag(s[:nl]) {
		s = s[nl+1:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func isFenceTag(s string) bool {
	s = strings.TrimSpace(s)
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// sliceBraces cuts the substring between the first '{' and the last '}'.
func sliceBraces(s string) string {
	open := strings.IndexByte(s, '{')
	closing := strings.LastIndexByte(s, '}')
	if open == -1 || closing == -1 || open >= closing {
		return ""
	}
	return s[open : closing+1]
}

// planDocument is the tolerant wire-side shape of a Plan. Every field
// swallows type mismatches instead of failing the whole decode; only a
// non-object top level is a decode error.
type planDocument struct {
	Overview        lenientObject[overviewDocument]    `json:"overview"`
	Deadlines       lenientList[deadlineDocument]      `json:"deadlines"`
	TopicPriorities lenientList[topicPriorityDocument] `json:"topic_priorities"`
	Prerequisites   lenientList[prerequisiteDocument]  `json:"prerequisites"`
	WeeklySchedule  lenientList[weekDocument]          `json:"weekly_schedule"`
	RiskFlags       lenientList[riskFlagDocument]      `json:"risk_flags"`
}

type overviewDocument struct {
	TotalWeeks flexInt    `json:"total_weeks"`
	TotalHours flexFloat  `json:"total_hours"`
	TopicCount flexInt    `json:"topic_count"`
	Summary    flexString `json:"summary"`
}

type deadlineDocument struct {
	Date  flexString `json:"date"`
	Title flexString `json:"title"`
	Week  flexInt    `json:"week"`
}

type topicPriorityDocument struct {
	Topic    flexString `json:"topic"`
	Priority flexString `json:"priority"`
	Reason   flexString `json:"reason"`
}

type prerequisiteDocument struct {
	Topic     flexString              `json:"topic"`
	DependsOn lenientList[flexString] `json:"depends_on"`
}

type weekDocument struct {
	Week         flexInt                 `json:"week"`
	FocusTopics  lenientList[flexString] `json:"focus_topics"`
	HoursPlanned flexFloat               `json:"hours_planned"`
	Milestones   lenientList[flexString] `json:"milestones"`
}

type riskFlagDocument struct {
	Type        flexString `json:"type"`
	Description flexString `json:"description"`
	Suggestion  flexString `json:"suggestion"`
}

func (d planDocument) toDomain() domain.Plan {
	plan := domain.Plan{
		Overview: domain.Overview{
			TotalWeeks: int(d.Overview.Value.TotalWeeks),
			TotalHours: float64(d.Overview.Value.TotalHours),
			TopicCount: int(d.Overview.Value.TopicCount),
			Summary:    string(d.Overview.Value.Summary),
		},
		TopicPriorities: []domain.TopicPriority{},
		Prerequisites:   []domain.Prerequisite{},
		WeeklySchedule:  []domain.WeekEntry{},
		RiskFlags:       []domain.RiskFlag{},
	}
	for _, dl := range d.Deadlines {
		plan.Deadlines = append(plan.Deadlines, domain.Deadline{
			Date:  string(dl.Date),
			Title: string(dl.Title),
			Week:  int(dl.Week),
		})
	}
	for _, tp := range d.TopicPriorities {
		plan.TopicPriorities = append(plan.TopicPriorities, domain.TopicPriority{
			Topic:    string(tp.Topic),
			Priority: domain.Priority(tp.Priority),
			Reason:   string(tp.Reason),
		})
	}
	for _, pr := range d.Prerequisites {
		plan.Prerequisites = append(plan.Prerequisites, domain.Prerequisite{
			Topic:     string(pr.Topic),
			DependsOn: flexStrings(pr.DependsOn),
		})
	}
	for _, w := range d.WeeklySchedule {
		plan.WeeklySchedule = append(plan.WeeklySchedule, domain.WeekEntry{
			Week:         int(w.Week),
			FocusTopics:  flexStrings(w.FocusTopics),
			HoursPlanned: float64(w.HoursPlanned),
			Milestones:   flexStrings(w.Milestones),
		})
	}
	for _, rf := range d.RiskFlags {
		plan.RiskFlags = append(plan.RiskFlags, domain.RiskFlag{
			Type:        string(rf.Type),
			Description: string(rf.Description),
			Suggestion:  string(rf.Suggestion),
		})
	}
	return plan
}

func flexStrings(list lenientList[flexString]) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = string(s)
	}
	return out
}

// lenientList decodes a JSON array of T; anything else decodes as empty.
type lenientList[T any] []T

func (l *lenientList[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		*l = nil
		return nil
	}
	*l = items
	return nil
}

// lenientObject decodes a JSON object into T; anything else decodes as the
// zero value.
type lenientObject[T any] struct {
	Value T
}

func (o *lenientObject[T]) UnmarshalJSON(data []byte) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		o.Value = zero
		return nil
	}
	o.Value = v
	return nil
}

// flexString decodes strings directly and renders numbers and booleans as
// text; other shapes decode as "".
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexString(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flexString(strconv.FormatBool(b))
		return nil
	}
	*f = ""
	return nil
}

// flexFloat decodes numbers directly and numeric strings by parsing; other
// shapes decode as 0.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*f = flexFloat(parsed)
			return nil
		}
	}
	*f = 0
	return nil
}

// flexInt truncates flexFloat to an integer.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var ff flexFloat
	_ = ff.UnmarshalJSON(data)
	*f = flexInt(ff)
	return nil
}
