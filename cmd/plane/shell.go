package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justyntemme/plane/internal/app"
	"github.com/justyntemme/plane/internal/location"
	"github.com/justyntemme/plane/internal/tags"
)

func newShellCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "shell [location]",
		Short: "Browse interactively",
		Long: `Start an interactive session with tabs, history, path bar and tag locations.
Type "help" for the commands.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := openContext(opts)
			if err != nil {
				return err
			}
			defer ctx.Close()

			w, err := ctx.NewWindow()
			if err != nil {
				return err
			}
			sh := &shell{ctx: ctx, w: w, out: cmd.OutOrStdout()}
			if len(args) > 0 {
				if err := w.Navigate(args[0]); err != nil {
					return err
				}
			}
			return sh.run(cmd.InOrStdin())
		},
	}
}

var errQuit = errors.New("quit")

const shellHelp = `cd <path|uri|//tag//>  open a location        back, forward   history
tag <name>             narrow by a tag        crumb <n>       open a path bar segment
ls                     list items             select <n>...   select listed items
copy                   copy selection         rm              trash selection
undo                   undo last trash        mkdir <name>    new folder
tabs                   list tabs              tab new|close <n>|<n>
tags [add|rm|up|down <tag>]                   quit`

type shell struct {
	ctx   *app.Context
	w     *app.Window
	out   io.Writer
	items []app.Item
}

func (s *shell) run(in io.Reader) error {
	s.prompt()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		err := s.exec(scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		s.prompt()
	}
	return scanner.Err()
}

func (s *shell) prompt() {
	s.ctx.Poll()
	s.ctx.Queue.Flush()
	fmt.Fprintf(s.out, "%s> ", s.w.Active().Bar.String())
}

func (s *shell) exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), cmd))

	switch cmd {
	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)
	case "quit", "exit":
		return errQuit
	case "cd", "open":
		if rest == "" {
			rest = "~"
		}
		return s.w.Navigate(rest)
	case "back":
		if !s.w.Back() {
			fmt.Fprintln(s.out, "at the start of history")
		}
	case "forward":
		if !s.w.Forward() {
			fmt.Fprintln(s.out, "at the end of history")
		}
	case "tag":
		if len(args) != 1 {
			return errors.New("usage: tag <name>")
		}
		return s.w.AddTag(args[0])
	case "crumb":
		n, err := s.index(args)
		if err != nil {
			return err
		}
		if !s.w.OpenSegment(n) {
			return fmt.Errorf("no segment %d", n+1)
		}
	case "ls":
		s.list()
	case "select":
		var picked []app.Item
		for _, a := range args {
			n, err := s.index([]string{a})
			if err != nil {
				return err
			}
			if n >= len(s.items) {
				return fmt.Errorf("no item %d, run ls first", n+1)
			}
			picked = append(picked, s.items[n])
		}
		s.w.Active().Select(picked...)
	case "copy":
		return s.w.CopySelection()
	case "rm":
		msg, err := s.w.TrashSelection()
		if msg != "" {
			fmt.Fprintln(s.out, msg)
		}
		return err
	case "undo":
		desc, err := s.w.UndoLast()
		if err == nil {
			fmt.Fprintln(s.out, desc)
		}
		return err
	case "mkdir":
		path, err := s.w.NewFolder(rest)
		if err == nil {
			fmt.Fprintln(s.out, "created", path)
		}
		return err
	case "tabs":
		for i, t := range s.w.Tabs() {
			marker := " "
			if i == s.w.ActiveIndex() {
				marker = "*"
			}
			fmt.Fprintf(s.out, "%s %d. %s\n", marker, i+1, t.Title())
		}
	case "tab":
		return s.tab(args)
	case "tags":
		return s.tags(args)
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	return nil
}

func (s *shell) list() {
	s.items = s.w.Active().Items()
	for i, it := range s.items {
		var name string
		switch it := it.(type) {
		case app.TagItem:
			name = "#" + it.Tag
		case app.FileItem:
			name = it.Path
			if it.IsDir {
				name += "/"
			}
		}
		fmt.Fprintf(s.out, "%3d  %s\n", i+1, name)
	}
}

func (s *shell) tab(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: tab new|close <n>|<n>")
	}
	switch args[0] {
	case "new":
		_, err := s.w.NewTab(location.Location{})
		return err
	case "close":
		n := s.w.ActiveIndex()
		if len(args) > 1 {
			var err error
			if n, err = s.index(args[1:]); err != nil {
				return err
			}
		}
		if !s.w.CloseTab(n) {
			return errors.New("cannot close that tab")
		}
	default:
		n, err := s.index(args)
		if err != nil {
			return err
		}
		if !s.w.SwitchTab(n) {
			return fmt.Errorf("no tab %d", n+1)
		}
	}
	return nil
}

func (s *shell) tags(args []string) error {
	reg := s.ctx.Tags
	if len(args) == 0 {
		fmt.Fprintln(s.out, strings.Join(reg.Tags(), ", "))
		return nil
	}
	if len(args) < 2 {
		return errors.New("usage: tags add|rm|up|down <tag>")
	}
	switch args[0] {
	case "add":
		return reg.Add(args[1:]...)
	case "rm":
		return reg.Remove(args[1:]...)
	case "up":
		return reg.Move(args[1], tags.Up)
	case "down":
		return reg.Move(args[1], tags.Down)
	}
	return fmt.Errorf("unknown tags command %q", args[0])
}

// index parses a 1-based number typed by the user.
func (s *shell) index(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("missing number")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%q is not a position", args[0])
	}
	return n - 1, nil
}
