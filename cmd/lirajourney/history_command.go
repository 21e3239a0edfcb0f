package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/vytor/lirajourney/internal/models"
	"github.com/vytor/lirajourney/internal/services"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var filter models.RunFilter

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent build runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(history services.HistoryService) error {
				runs, total, err := history.Recent(cmd.Context(), filter)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No build runs recorded")
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), renderRuns(runs, time.Now()))
				if total > len(runs) {
					fmt.Fprintf(cmd.OutOrStdout(), "Showing %d of %d runs\n", len(runs), total)
				}
				if filter.CharacterID != "" {
					page, err := history.LastPage(cmd.Context(), filter.CharacterID)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Last %s page: %s in run %s (%s)\n",
						page.CharacterID, page.Status, page.RunID, orDash(page.OutputPath))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&filter.CharacterID, "character", "", "Only runs that built this character")
	cmd.Flags().StringVar(&filter.Status, "status", "", "Only runs with this status (running, ok, partial, failed)")
	cmd.Flags().IntVar(&filter.Limit, "limit", 10, "Maximum number of runs")
	cmd.Flags().IntVar(&filter.Offset, "offset", 0, "Skip this many runs")

	cmd.AddCommand(newHistoryShowCommand(ctx))
	cmd.AddCommand(newHistoryPruneCommand(ctx))
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the pages of one build run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(history services.HistoryService) error {
				detail, err := history.Run(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprint(out, renderRuns([]models.BuildRun{detail.Run}, time.Now()))
				if len(detail.Pages) == 0 {
					fmt.Fprintln(out, "No pages recorded")
					return nil
				}
				rows := make([][]string, 0, len(detail.Pages))
				for _, p := range detail.Pages {
					rows = append(rows, []string{
						p.CharacterID,
						p.Status,
						strconv.Itoa(p.PhaseCount),
						strconv.Itoa(p.QuizCount),
						strconv.Itoa(p.ExerciseCount),
						orDash(p.Error),
					})
				}
				fmt.Fprint(out, renderTable(
					[]string{"Character", "Status", "Phases", "Quizzes", "Exercises", "Error"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete build runs older than a cutoff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(history services.HistoryService) error {
				n, err := history.Prune(cmd.Context(), olderThan)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d runs\n", n)
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "Age cutoff")
	return cmd
}

func renderRuns(runs []models.BuildRun, now time.Time) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.Status,
			humanize.RelTime(run.StartedAt, now, "ago", "from now"),
			runDuration(run),
			fmt.Sprintf("%d/%d", run.CharactersFound, run.CharactersExpected),
			strconv.Itoa(run.PagesGenerated),
			strconv.Itoa(run.PagesFailed),
		})
	}
	return renderTable(
		[]string{"Run", "Status", "Started", "Duration", "Found", "Generated", "Failed"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
	)
}

func runDuration(run models.BuildRun) string {
	if run.FinishedAt == nil {
		return "-"
	}
	return run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
}
