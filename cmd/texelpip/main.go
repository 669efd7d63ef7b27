// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelpip/main.go
// Summary: Terminal demo host that runs one screen with a picture-in-picture overlay.
// Usage: texelpip [-screen clock|pty|file] [-cmd "top"] [-file path] [-config path]

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/framegrace/texelpip/config"
	"github.com/framegrace/texelpip/internal/effects"
	"github.com/framegrace/texelpip/internal/journal"
	"github.com/framegrace/texelpip/internal/loop"
	"github.com/framegrace/texelpip/internal/tcellhost"
	"github.com/framegrace/texelpip/pip"
)

const recentTransitions = 6

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("texelpip", flag.ContinueOnError)
	configPath := fs.String("config", "", "Config file (default: texelpip.json in the user config dir)")
	logPath := fs.String("log", "", "Append log output to this file")
	journalPath := fs.String("journal", "", "Transition journal database (overrides config)")
	noJournal := fs.Bool("no-journal", false, "Do not record overlay transitions")
	screenKind := fs.String("screen", "clock", "Screen to show: clock, pty or file")
	command := fs.String("cmd", "", "Command line for the pty screen")
	filePath := fs.String("file", "", "File for the file screen")
	popToRoot := fs.Bool("pop-to-root", false, "Pop the host stack to its root when the overlay closes")
	hideNav := fs.Bool("hide-nav", true, "Hide the navigation bar while the overlay is floating")
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("texelpip needs a terminal")
	}

	logFile, err := setupLogging(*logPath)
	if err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, cfgPath, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	overrides := hostOverrides(fs, *popToRoot, *hideNav)
	opts := applyOverrides(cfg, overrides).Options()
	if *journalPath != "" {
		opts.JournalPath = *journalPath
	}
	if *noJournal {
		opts.JournalEnabled = false
	}

	app, err := newScreenApp(*screenKind, *command, *filePath)
	if err != nil {
		return err
	}

	dispatcher := pip.NewEventDispatcher()
	jr := openJournal(opts)
	if jr != nil {
		defer jr.Close()
		dispatcher.Subscribe(jr)
	}

	fg, bg, err := tcellhost.DetectDefaultColors()
	if err != nil {
		log.Printf("Colors: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	lp := loop.New(64)
	animator := effects.NewAnimator(time.Now)
	home := newHomeApp()
	stack := tcellhost.NewStack(true,
		tcellhost.NewAppScreen("home", home),
		tcellhost.NewAppScreen(*screenKind, app),
	)
	desk, err := tcellhost.NewDesktop(tcellhost.DesktopOptions{
		Driver:   tcellhost.NewTcellScreenDriver(screen),
		Loop:     lp,
		Animator: animator,
		Stack:    stack,
		Scale:    opts.ScreenScale,
		Fg:       fg,
		Bg:       bg,
		Quit:     cancel,
	})
	if err != nil {
		return fmt.Errorf("desktop: %w", err)
	}
	home.SetRefreshNotifier(desk.RefreshNotifier())
	app.SetRefreshNotifier(desk.RefreshNotifier())

	coord := pip.NewCoordinator(pip.Options{
		Screen:            stack.Top(),
		Host:              stack,
		Root:              desk.Root(),
		Surfaces:          desk.Surfaces(),
		Metrics:           desk.Metrics(),
		Scheduler:         lp,
		Animator:          animator,
		Dispatcher:        dispatcher,
		Customization:     opts.Customization,
		Geometry:          opts.Geometry,
		MaximizeDelay:     opts.MaximizeDelay,
		ControlsHideDelay: opts.ControlsHideDelay,
	})
	if jr != nil {
		showRecent := func() {
			entries, err := jr.Recent(recentTransitions)
			if err != nil {
				log.Printf("[JOURNAL] Failed to read history: %v", err)
				return
			}
			home.SetRecent(entries)
		}
		dispatcher.Subscribe(pip.ListenerFunc(func(ev pip.Event) {
			if _, ok := ev.Payload.(pip.TransitionPayload); ok {
				showRecent()
			}
		}))
		showRecent()
	}
	lp.Post(func() {
		desk.Attach(coord)
		coord.Load()
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := lp.Run(gctx)
		desk.Close()
		home.Stop()
		app.Stop()
		return err
	})
	g.Go(func() error { return desk.PollInput(gctx) })
	g.Go(func() error { return desk.ForwardRefresh(gctx) })
	g.Go(home.Run)
	g.Go(app.Run)
	if watchable(cfgPath) {
		g.Go(func() error {
			err := config.Watch(gctx, cfgPath, func(next config.Config) {
				reloaded := applyOverrides(next, overrides).Options()
				lp.Post(func() {
					coord.SetCustomization(reloaded.Customization)
					coord.Controls().SetDelay(reloaded.ControlsHideDelay)
					desk.Metrics().SetScale(reloaded.ScreenScale)
				})
			})
			if err != nil {
				log.Printf("Config: watch disabled: %v", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if jr != nil && *journalPath != "" {
		printSummary(os.Stdout, jr)
	}
	return nil
}

// printSummary writes the transitions recorded by this run's journal.
func printSummary(w io.Writer, jr *journal.Journal) {
	entries, err := jr.Recent(recentTransitions)
	if err != nil {
		log.Printf("[JOURNAL] Failed to read history: %v", err)
		return
	}
	if len(entries) == 0 {
		return
	}
	fmt.Fprintln(w, "Recent transitions:")
	for _, e := range entries {
		fmt.Fprintf(w, "  %s  %s %s: %s -> %s\n", e.At.Format(time.RFC3339), e.ScreenID, e.Event, e.From, e.To)
	}
}

// hostOverrides collects the host flags the user set explicitly.
func hostOverrides(fs *flag.FlagSet, popToRoot, hideNav bool) config.Section {
	out := make(config.Section)
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "pop-to-root":
			out["pop_to_root_on_close"] = popToRoot
		case "hide-nav":
			out["hide_navigation_while_minimized"] = hideNav
		}
	})
	return out
}

// applyOverrides returns a copy of cfg with overrides written into the host
// section. cfg itself is left untouched.
func applyOverrides(cfg config.Config, overrides config.Section) config.Config {
	out := config.Clone(cfg)
	if out == nil {
		out = make(config.Config)
	}
	if len(overrides) == 0 {
		return out
	}
	host := out.Section(config.SectionHost)
	if host == nil {
		host = make(config.Section)
		out[config.SectionHost] = host
	}
	for key, value := range overrides {
		host[key] = value
	}
	return out
}

func openJournal(opts config.Options) *journal.Journal {
	if !opts.JournalEnabled {
		return nil
	}
	path := opts.JournalPath
	if path == "" {
		var err error
		if path, err = config.DefaultJournalPath(); err != nil {
			log.Printf("[JOURNAL] Disabled: %v", err)
			return nil
		}
	}
	jr, err := journal.Open(path)
	if err != nil {
		log.Printf("[JOURNAL] Disabled: %v", err)
		return nil
	}
	return jr
}

// watchable reports whether the config file's directory exists to be watched.
func watchable(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(filepath.Dir(path))
	return err == nil && info.IsDir()
}
