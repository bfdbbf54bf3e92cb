package main

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/justyntemme/plane/internal/trash"
)

func newTrashCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash <path>...",
		Short: "Move files to the trash",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := trash.Default()
			if err != nil {
				return err
			}
			paths := make([]string, len(args))
			for i, a := range args {
				if paths[i], err = filepath.Abs(a); err != nil {
					return err
				}
			}
			res := t.Batch(paths)
			for _, f := range res.Failed {
				fmt.Fprintf(cmd.ErrOrStderr(), "cannot trash %s: %v\n", f.Path, f.Err)
			}
			if msg := res.Message(); msg != "" {
				fmt.Fprintln(cmd.OutOrStdout(), msg)
			}
			if len(res.Failed) > 0 {
				return fmt.Errorf("%d of %d files not trashed", len(res.Failed), len(paths))
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List trashed files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := trash.Default()
			if err != nil {
				return err
			}
			items, err := t.List()
			if err != nil {
				return err
			}
			for _, it := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %8s  %-14s %s\n",
					it.Name, humanize.Bytes(uint64(it.Size)), humanize.Time(it.DeletedAt), it.OriginalPath)
			}
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "restore <name>...",
		Short: "Restore trashed files by their name in the trash",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := trash.Default()
			if err != nil {
				return err
			}
			items, err := t.List()
			if err != nil {
				return err
			}
			var picked []trash.Item
			for _, name := range args {
				found := false
				for _, it := range items {
					if it.Name == name {
						picked = append(picked, it)
						found = true
						break
					}
				}
				if !found {
					return fmt.Errorf("%q is not in the trash", name)
				}
			}
			for _, f := range t.RestoreAll(picked) {
				fmt.Fprintf(cmd.ErrOrStderr(), "cannot restore %s: %v\n", f.Path, f.Err)
			}
			return nil
		},
	})

	return cmd
}
