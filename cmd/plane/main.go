package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justyntemme/plane/internal/app"
	"github.com/justyntemme/plane/internal/config"
	"github.com/justyntemme/plane/internal/debug"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	debugCats  string
}

func newRootCmd() *cobra.Command {
	// Subcommands with their own pre-run hooks still get the debug setup
	cobra.EnableTraverseRunHooks = true

	opts := &options{}
	rootCmd := &cobra.Command{
		Use:     "plane",
		Short:   "A tag-aware file manager core",
		Long:    `Plane navigates directories and tag locations, keeps a path bar in sync and manages the tag list.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.debugCats == "" {
				return
			}
			cats := make(map[debug.Category]bool)
			for _, c := range strings.Split(opts.debugCats, ",") {
				cats[debug.Category(strings.ToUpper(strings.TrimSpace(c)))] = true
			}
			debug.SetCategories(cats)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is $HOME/.config/plane/config.json)")
	rootCmd.PersistentFlags().StringVar(&opts.debugCats, "debug", "", "comma separated debug categories (debug builds only)")

	rootCmd.AddCommand(newCrumbsCmd(opts))
	rootCmd.AddCommand(newTagsCmd(opts))
	rootCmd.AddCommand(newTrashCmd(opts))
	rootCmd.AddCommand(newShellCmd(opts))
	return rootCmd
}

// loadConfig reads the configuration, falling back to defaults on a parse
// error the way the file manager does.
func loadConfig(opts *options) (config.Config, error) {
	mgr := config.NewManager(opts.configPath)
	if err := mgr.Load(); err != nil {
		return config.Config{}, err
	}
	if err := mgr.ParseError(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s is invalid (%v), using defaults\n", mgr.Path(), err)
	}
	return mgr.Get(), nil
}

func openContext(opts *options) (*app.Context, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	return app.NewContext(cfg)
}
