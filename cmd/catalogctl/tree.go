package main

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/myenglish-catalog/internal/domain"
	"github.com/heartmarshall/myenglish-catalog/internal/navtree"
)

func newTreeCmd(load envLoader) *cobra.Command {
	var (
		boardType string
		expand    []string
		all       bool
		current   string
	)
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the board and lesson tree of a catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := load()
			if err != nil {
				return err
			}
			bt := domain.BoardType(boardType)
			if !bt.IsValid() {
				return fmt.Errorf("--type %q: want vocabulary, grammar or idioms", boardType)
			}

			ctx := cmd.Context()
			tree := navtree.New(e.logger, e.gateway, navtree.NewLessonCache(e.gateway), bt)
			if err := tree.Mount(ctx); err != nil {
				return failureError(e.classifier().Classify(err))
			}

			targets := make([]uuid.UUID, 0, len(expand))
			if all {
				for _, n := range tree.Nodes(current) {
					targets = append(targets, n.Board.ID)
				}
			}
			for _, raw := range expand {
				id, err := uuid.Parse(raw)
				if err != nil {
					return fmt.Errorf("--expand: %w", err)
				}
				targets = append(targets, id)
			}
			for _, id := range targets {
				if err := tree.Expand(ctx, id); err != nil {
					return failureError(e.classifier().Classify(err))
				}
			}

			printTree(cmd.OutOrStdout(), tree.Nodes(current))
			return nil
		},
	}
	cmd.Flags().StringVar(&boardType, "type", string(domain.BoardTypeVocabulary), "catalog type: vocabulary, grammar or idioms")
	cmd.Flags().StringArrayVar(&expand, "expand", nil, "board id to expand (repeatable)")
	cmd.Flags().BoolVar(&all, "all", false, "expand every board")
	cmd.Flags().StringVar(&current, "path", "", "current location, marks matching nodes active")
	return cmd
}

func printTree(w io.Writer, nodes []navtree.BoardNode) {
	for _, n := range nodes {
		marker := "+"
		if n.State == navtree.Expanded {
			marker = "-"
		}
		fmt.Fprintf(w, "%s %s%s  %s\n", marker, n.Board.Name, activeMark(n.Active), n.Path)
		for _, l := range n.Lessons {
			fmt.Fprintf(w, "    %s%s  %s\n", l.Lesson.Title, activeMark(l.Active), l.Path)
		}
	}
}

func activeMark(active bool) string {
	if active {
		return " *"
	}
	return ""
}
