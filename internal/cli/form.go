package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mkrogh/studyplan/internal/cli/formatter"
	"github.com/mkrogh/studyplan/internal/domain"
)

// studyplanHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func studyplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// generateFormState carries the raw field values of the interactive form.
// Everything is collected as text and converted once the form submits.
type generateFormState struct {
	Topics    string
	Difficult string
	Deadlines string
	Weeks     string
	Hours     string
	Context   string
}

// generateForm builds the interactive form for a plan request. Defaults come
// from configuration and are shown as editable values, not placeholders.
func generateForm(state *generateFormState) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Topics (one per line)").
				Placeholder("Algebra\nStatistics").
				Value(&state.Topics).
				Validate(validateNonBlank("at least one topic is required")),
			huh.NewText().
				Title("Difficult topics (one per line, blank for none)").
				Value(&state.Difficult),
			huh.NewText().
				Title("Deadlines (one per line, e.g. 2026-09-14 Final exam)").
				Value(&state.Deadlines),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Weeks").
				Value(&state.Weeks).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Hours per week").
				Value(&state.Hours).
				Validate(validatePositiveFloat),
			huh.NewInput().
				Title("Extra context (optional)").
				Placeholder("Exam is mostly multiple choice").
				Value(&state.Context),
		),
	).WithTheme(studyplanHuhTheme()).WithShowHelp(false)
}

// toInput converts the submitted form state into a generation input.
// Validation already ran per field, so conversion errors cannot occur here.
func (s generateFormState) toInput() domain.GenerationInput {
	weeks, _ := strconv.Atoi(strings.TrimSpace(s.Weeks))
	hours, _ := strconv.ParseFloat(strings.TrimSpace(s.Hours), 64)
	return domain.GenerationInput{
		Topics:          splitLines(s.Topics),
		DifficultTopics: splitLines(s.Difficult),
		Deadlines:       splitLines(s.Deadlines),
		Weeks:           weeks,
		HoursPerWeek:    hours,
		Context:         strings.TrimSpace(s.Context),
	}
}

func splitLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func validateNonBlank(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s", msg)
		}
		return nil
	}
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fmt.Errorf("enter a positive whole number")
	}
	return nil
}

func validatePositiveFloat(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}
