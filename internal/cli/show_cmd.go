package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mkrogh/studyplan/internal/cli/formatter"
	"github.com/mkrogh/studyplan/internal/repository"
	"github.com/mkrogh/studyplan/internal/schedule"
	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the last generated plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := app.Plans.Last(context.Background())
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					fmt.Println(formatter.StyleDim.Render("No plan yet. Run \"studyplan generate\" first."))
					return nil
				}
				return err
			}

			fmt.Print(formatter.FormatPlan(record.Plan))
			fmt.Printf("\n%s %s\n", formatter.StyleDim.Render("Generated:"), record.GeneratedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
}

func newDaysCmd(app *App) *cobra.Command {
	var week int

	cmd := &cobra.Command{
		Use:   "days [week]",
		Short: "Show the day-by-day breakdown of one week",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("week must be a number, got %q", args[0])
				}
				week = n
			}

			record, err := app.Plans.Last(context.Background())
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					fmt.Println(formatter.StyleDim.Render("No plan yet. Run \"studyplan generate\" first."))
					return nil
				}
				return err
			}

			for _, entry := range record.Plan.WeeklySchedule {
				if entry.Week != week {
					continue
				}
				days := schedule.PlanDays(entry, record.Input.CleanDifficultTopics())
				fmt.Print(formatter.FormatDays(week, days))
				return nil
			}
			return fmt.Errorf("the plan has no week %d", week)
		},
	}

	cmd.Flags().IntVar(&week, "week", 1, "Week number to expand")

	return cmd
}
