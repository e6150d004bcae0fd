package domain

import (
	"fmt"
	"strings"
)

// GenerationInput is the validated student request driving one generation
// cycle. DifficultTopics is matched against Topics by trimmed,
// case-insensitive name comparison.
type GenerationInput struct {
	Topics          []string `json:"topics"`
	DifficultTopics []string `json:"difficult_topics"`
	Deadlines       []string `json:"deadlines"`
	Weeks           int      `json:"weeks"`
	HoursPerWeek    float64  `json:"hours_per_week"`
	Context         string   `json:"context"`
}

// Validate checks the hard requirements on a generation request.
func (in GenerationInput) Validate() error {
	if len(in.CleanTopics()) == 0 {
		return fmt.Errorf("at least one topic is required")
	}
	if in.Weeks < 1 {
		return fmt.Errorf("weeks must be a positive integer, got %d", in.Weeks)
	}
	if in.HoursPerWeek <= 0 {
		return fmt.Errorf("hours per week must be positive, got %g", in.HoursPerWeek)
	}
	return nil
}

// CleanTopics returns Topics trimmed with blanks dropped, order preserved.
func (in GenerationInput) CleanTopics() []string {
	return cleanLines(in.Topics)
}

// CleanDeadlines returns Deadlines trimmed with blanks dropped.
func (in GenerationInput) CleanDeadlines() []string {
	return cleanLines(in.Deadlines)
}

// CleanDifficultTopics returns the difficult-topic names that actually match
// a listed topic, in topic-list order.
func (in GenerationInput) CleanDifficultTopics() []string {
	flagged := make(map[string]bool, len(in.DifficultTopics))
	for _, d := range in.DifficultTopics {
		if key := TopicKey(d); key != "" {
			flagged[key] = true
		}
	}
	var out []string
	for _, t := range in.CleanTopics() {
		if flagged[TopicKey(t)] {
			out = append(out, t)
		}
	}
	return out
}

// TopicKey normalizes a topic name for matching: trimmed and lowercased.
func TopicKey(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}

func cleanLines(lines []string) []string {
	var out []string
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}
