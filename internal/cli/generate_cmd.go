package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mkrogh/studyplan/internal/cli/formatter"
	"github.com/mkrogh/studyplan/internal/domain"
	"github.com/mkrogh/studyplan/internal/intelligence"
	"github.com/spf13/cobra"
)

func newGenerateCmd(app *App) *cobra.Command {
	var (
		topics    []string
		difficult []string
		deadlines []string
		weeks     int
		hours     float64
		extra     string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new study plan",
		Long: "Generate a study plan from the given topics. Without --topic flags, " +
			"an interactive form collects the request when run from a terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := domain.GenerationInput{
				Topics:          topics,
				DifficultTopics: difficult,
				Deadlines:       deadlines,
				Weeks:           weeks,
				HoursPerWeek:    hours,
				Context:         extra,
			}

			if len(topics) == 0 {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("at least one --topic is required in non-interactive mode")
				}
				state := generateFormState{
					Weeks: strconv.Itoa(app.Config.Plan.DefaultWeeks),
					Hours: strconv.FormatFloat(app.Config.Plan.DefaultHoursPerWeek, 'g', -1, 64),
				}
				if err := generateForm(&state).Run(); err != nil {
					return err
				}
				input = state.toInput()
			}

			if input.Weeks == 0 {
				input.Weeks = app.Config.Plan.DefaultWeeks
			}
			if input.HoursPerWeek == 0 {
				input.HoursPerWeek = app.Config.Plan.DefaultHoursPerWeek
			}

			fmt.Println(formatter.StyleDim.Render("Asking the model for a plan..."))

			result, err := app.Plans.Generate(context.Background(), input)
			if err != nil {
				if errors.Is(err, intelligence.ErrSuperseded) {
					fmt.Println(formatter.StyleDim.Render("A newer request finished first; its plan is the current one."))
					return nil
				}
				return err
			}

			if !result.Parsed {
				fmt.Print(formatter.FormatRaw(result.Raw))
				return nil
			}

			fmt.Print(formatter.FormatPlan(result.Plan))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&topics, "topic", nil, "Topic to study (repeatable)")
	cmd.Flags().StringArrayVar(&difficult, "difficult", nil, "Topic the student finds difficult (repeatable)")
	cmd.Flags().StringArrayVar(&deadlines, "deadline", nil, "Deadline, e.g. \"2026-09-14 Final exam\" (repeatable)")
	cmd.Flags().IntVar(&weeks, "weeks", 0, "Number of weeks to plan")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Available study hours per week")
	cmd.Flags().StringVar(&extra, "context", "", "Extra context for the model")

	return cmd
}
