package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/energopraktiki/internal/content"
	"github.com/iliyamo/energopraktiki/internal/schedule"
	"github.com/iliyamo/energopraktiki/internal/slug"
	"github.com/iliyamo/energopraktiki/internal/utils"
)

func newHashPasswordCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for a facilitator or admin password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := utils.CheckPasswordPolicy(args[0]); err != nil {
				return err
			}
			hash, err := utils.HashPassword(args[0], cost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}

func newSlugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slug <text>",
		Short: "Print the URL slug generated for a name or title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := slug.Generate(strings.Join(args, " "))
			if s == "" {
				return fmt.Errorf("no slug can be built from %q", strings.Join(args, " "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func newCodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List the fixed schedule share codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all := schedule.NewCodes().All()
			ids := make([]string, 0, len(all))
			for id := range all {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", id, all[id])
			}
			return nil
		},
	}
}

func newBlocksCmd() *cobra.Command {
	blocks := &cobra.Command{
		Use:   "blocks",
		Short: "List editable site blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range content.Blocks() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	blocks.AddCommand(&cobra.Command{
		Use:   "validate <name> <file.json>",
		Short: "Check a block payload against its schema",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			if err := content.ValidateBlock(args[0], payload); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			return nil
		},
	})
	return blocks
}
