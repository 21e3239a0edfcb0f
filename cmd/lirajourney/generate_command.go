package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/vytor/lirajourney/internal/config"
	"github.com/vytor/lirajourney/internal/db"
	"github.com/vytor/lirajourney/internal/journey"
	"github.com/vytor/lirajourney/internal/logger"
	"github.com/vytor/lirajourney/internal/models"
	"github.com/vytor/lirajourney/internal/repository/sqlite"
	"github.com/vytor/lirajourney/internal/reviewqueue"
	"github.com/vytor/lirajourney/internal/services"
	"github.com/vytor/lirajourney/internal/site"
	"github.com/vytor/lirajourney/internal/vocabulary"
)

var errNothingGenerated = errors.New("no character pages were generated")

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var seed uint64
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build every character journey page and the index page",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.RandomSeed = seed
			}
			log := logger.Default().WithPrefix("generate")
			log.Debug("data_dir=%s", cfg.DataDir)
			log.Debug("output_dir=%s", cfg.OutputDir)
			log.Debug("queue_path=%s", cfg.QueuePath)
			log.Debug("history_db_path=%s", cfg.HistoryDBPath)
			log.Debug("random_seed=%d", cfg.RandomSeed)

			manifest, err := config.LoadManifest(cfg.ManifestPath())
			if err != nil {
				return err
			}
			tmpl, err := site.LoadTemplates(cfg.TemplatesDir)
			if err != nil {
				return err
			}

			return ctx.withDB(func(database *db.DB) error {
				svc := services.NewBuildService(services.BuildDeps{
					Config:     cfg,
					Manifest:   manifest,
					Vocabulary: vocabulary.NewIndex(cfg.VocabularyPath()),
					Assembler:  journey.NewAssembler(journey.NewQuizBuilderForSeed(cfg.RandomSeed)),
					Renderer:   site.NewRenderer(tmpl),
					Queue:      reviewqueue.NewStore(cfg.QueuePath),
					Runs:       sqlite.NewRunRepository(database.DB),
					Pages:      sqlite.NewPageRepository(database.DB),
				})

				var progress services.ProgressFunc
				if !noProgress && showProgress(cfg) {
					progress = newProgress()
				}

				summary, err := svc.Generate(cmd.Context(), progress)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), renderSummary(summary))
				if summary.Generated() == 0 {
					return errNothingGenerated
				}
				return nil
			})
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "Quiz shuffle seed (overrides RANDOM_SEED; 0 seeds from the clock)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
	return cmd
}

// showProgress is true when stderr is a terminal and debug logging is not
// already narrating every page.
func showProgress(cfg config.Config) bool {
	fd := os.Stderr.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return false
	}
	return logger.ParseLevel(cfg.LogLevel) != logger.DEBUG
}

func newProgress() services.ProgressFunc {
	var bar *progressbar.ProgressBar
	return func(done, total int, characterID string) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription("journeys"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}
		bar.Describe(characterID)
		_ = bar.Add(1)
		if done == total {
			_ = bar.Finish()
		}
	}
}

func renderSummary(summary *services.BuildSummary) string {
	var b strings.Builder

	if len(summary.Pages) > 0 {
		rows := make([][]string, 0, len(summary.Pages))
		for _, p := range summary.Pages {
			detail := p.OutputPath
			if p.Status != models.PageStatusGenerated {
				detail = p.Error
			}
			rows = append(rows, []string{
				p.CharacterID,
				p.Status,
				strconv.Itoa(p.PhaseCount),
				strconv.Itoa(p.QuizCount),
				strconv.Itoa(p.ExerciseCount),
				orDash(detail),
			})
		}
		b.WriteString(renderTable(
			[]string{"Character", "Status", "Phases", "Quizzes", "Exercises", "Output"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
		))
	}

	if len(summary.Missing) > 0 {
		fmt.Fprintf(&b, "Missing character files: %s\n", strings.Join(summary.Missing, ", "))
	}
	if summary.IndexPath != "" {
		fmt.Fprintf(&b, "Index page: %s\n", summary.IndexPath)
	} else if summary.IndexErr != nil {
		fmt.Fprintf(&b, "Index page failed: %v\n", summary.IndexErr)
	}

	run := summary.Run
	fmt.Fprintf(&b, "Run %s: %s (found %d of %d, generated %d, failed %d)\n",
		run.ID, run.Status, len(summary.Pages), run.CharactersExpected,
		summary.Generated(), len(summary.Pages)-summary.Generated())
	return b.String()
}
