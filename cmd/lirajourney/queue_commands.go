package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vytor/lirajourney/internal/reviewqueue"
	"github.com/vytor/lirajourney/internal/vocabulary"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and manage the review queue",
	}

	queueCmd.AddCommand(newQueueListCommand(ctx))
	queueCmd.AddCommand(newQueueAddCommand(ctx))
	queueCmd.AddCommand(newQueueRemoveCommand(ctx))
	queueCmd.AddCommand(newQueueClearCommand(ctx))
	queueCmd.AddCommand(newQueuePreviewCommand(ctx))
	return queueCmd
}

func (c *commandContext) queueStore() (*reviewqueue.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return reviewqueue.NewStore(cfg.QueuePath), nil
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List queued words",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.queueStore()
			if err != nil {
				return err
			}
			entries := store.Load(cmd.Context())
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Queue is empty")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.Key.WordID,
					orDash(e.Key.CharacterID),
					orDash(e.Key.PhaseID),
					orDash(e.Field("word")),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"Word ID", "Character", "Phase", "Word"}, rows, nil))
			return nil
		},
	}
}

func newQueueAddCommand(ctx *commandContext) *cobra.Command {
	var character, phase string
	cmd := &cobra.Command{
		Use:   "add <word-id>",
		Short: "Queue a word for review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.queueStore()
			if err != nil {
				return err
			}
			key := reviewqueue.NewKey(args[0], character, phase)
			if key.WordID == "" {
				return fmt.Errorf("word id cannot be empty")
			}
			added, err := store.Add(cmd.Context(), key)
			if err != nil {
				return err
			}
			if added {
				fmt.Fprintf(cmd.OutOrStdout(), "Queued %s\n", key)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already queued\n", key)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&character, "character", "", "Character the word was queued from")
	cmd.Flags().StringVar(&phase, "phase", "", "Journey phase the word was queued from")
	return cmd
}

func newQueueRemoveCommand(ctx *commandContext) *cobra.Command {
	var character, phase string
	cmd := &cobra.Command{
		Use:   "remove <word-id>",
		Short: "Remove a word from the review queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.queueStore()
			if err != nil {
				return err
			}
			key := reviewqueue.NewKey(args[0], character, phase)
			removed, remaining, err := store.Remove(cmd.Context(), key)
			if err != nil {
				return err
			}
			if removed == 0 {
				return fmt.Errorf("%s is not queued", key)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries, %d remaining\n", removed, len(remaining))
			return nil
		},
	}
	cmd.Flags().StringVar(&character, "character", "", "Character part of the entry key")
	cmd.Flags().StringVar(&phase, "phase", "", "Phase part of the entry key")
	return cmd
}

func newQueueClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every queued word",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.queueStore()
			if err != nil {
				return err
			}
			count, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d entries\n", count)
			return nil
		},
	}
}

func newQueuePreviewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Show the words the index page review section would list",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			index := vocabulary.NewIndex(cfg.VocabularyPath())
			if err := index.Load(cmd.Context()); err != nil {
				return err
			}
			selector := reviewqueue.NewSelector(index.Words(), reviewqueue.NewStore(cfg.QueuePath))
			items := selector.GetReviewItems(cmd.Context(), cfg.ReviewLimit)
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No review items")
				return nil
			}
			rows := make([][]string, 0, len(items))
			for _, item := range items {
				rows = append(rows, []string{
					item.ID,
					strings.TrimSpace(item.Emoji + " " + item.Word),
					item.Translation,
					orDash(item.Level),
					orDash(item.PracticeURL),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"ID", "Word", "Translation", "Level", "Practice"}, rows, nil))
			return nil
		},
	}
}
