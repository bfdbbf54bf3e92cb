package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justyntemme/plane/internal/crumbs"
	"github.com/justyntemme/plane/internal/locate"
	"github.com/justyntemme/plane/internal/location"
	"github.com/justyntemme/plane/internal/tags"
)

func newCrumbsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "crumbs [location]",
		Short: "Print the path bar segments for a location",
		Long: `Print the path bar segments for a directory, URI or tag location (//a//b//).
Without an argument the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			reg, err := tags.Load(cfg.TagFile())
			if err != nil {
				return err
			}

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("error getting current directory: %w", err)
			}
			input := cwd
			if len(args) > 0 {
				input = args[0]
			}
			loc, err := location.Parse(input, location.FromPath(cwd), cfg.HomeDir(), reg.Tags())
			if err != nil {
				return err
			}

			locator, err := locate.New(16)
			if err != nil {
				return err
			}
			resolver := &crumbs.Resolver{Locator: locator, Home: cfg.HomeDir(), HomeLabel: cfg.PathBar.HomeLabel}
			printSegments(cmd.OutOrStdout(), resolver.Segments(loc))
			return nil
		},
	}
}

func printSegments(w io.Writer, segments []crumbs.Segment) {
	for _, s := range segments {
		marker := " "
		if s.Active {
			marker = "*"
		}
		target := s.URI
		if s.Tag != "" {
			target = location.Format(location.FromTags(s.Tag))
		}
		label := s.Label
		if s.Icon != "" {
			label = strings.TrimSpace(label + " (" + s.Icon + ")")
		}
		fmt.Fprintf(w, "%s %-30s %s\n", marker, label, target)
	}
}
