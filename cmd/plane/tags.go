package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justyntemme/plane/internal/tags"
)

func newTagsCmd(opts *options) *cobra.Command {
	var reg *tags.Registry

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage the tag list",
		Long:  `List, add, remove and reorder the registered tags.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			reg, err = tags.Load(cfg.TagFile())
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return listTags(cmd, reg)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tags in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listTags(cmd, reg)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add <tag>...",
		Short: "Register tags",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return reg.Add(args...)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "rm <tag>...",
		Aliases: []string{"remove"},
		Short:   "Unregister tags",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return reg.Remove(args...)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "up <tag>",
		Short: "Move a tag one place earlier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return reg.Move(args[0], tags.Up)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down <tag>",
		Short: "Move a tag one place later",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return reg.Move(args[0], tags.Down)
		},
	})

	return cmd
}

func listTags(cmd *cobra.Command, reg *tags.Registry) error {
	for i, tag := range reg.Tags() {
		fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, tag)
	}
	return nil
}
