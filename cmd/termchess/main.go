// Command termchess plays against the chess backend from a terminal. It
// drives the same session state machine as the web frontend.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nsf/termbox-go"

	"retrochess/internal/api"
	"retrochess/internal/game"
	"retrochess/internal/logging"
)

type config struct {
	apiBase   string
	timeout   time.Duration
	autoQueen bool
	logFile   string
	debug     bool
}

func parseFlags(args []string) (config, error) {
	var c config
	fs := flag.NewFlagSet("termchess", flag.ContinueOnError)
	fs.StringVar(&c.apiBase, "api", api.BaseURLFromEnv(), "chess backend base URL")
	fs.DurationVar(&c.timeout, "timeout", api.DefaultTimeout, "timeout for each backend request")
	fs.BoolVar(&c.autoQueen, "autoqueen", false, "promote pawns reaching the last rank to a queen")
	fs.StringVar(&c.logFile, "log", "", "write logs to this file instead of discarding them")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging")
	err := fs.Parse(args)
	return c, err
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	var logOut io.Writer = io.Discard
	if cfg.logFile != "" {
		f, err := os.OpenFile(cfg.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logging.Setup(logOut, cfg.debug)

	client := api.New(cfg.apiBase, api.WithTimeout(cfg.timeout))
	sess := game.NewSession("terminal", client, cfg.autoQueen)

	if err := termbox.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "init terminal: %v\n", err)
		os.Exit(1)
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc | termbox.InputMouse)

	// Redraw whenever the session changes, including from background requests.
	changes := make(chan uint64, 16)
	sess.AddWatcher(changes)
	defer sess.RemoveWatcher(changes)
	go func() {
		for range changes {
			termbox.Interrupt()
		}
	}()

	ui := newUI(sess)
	ui.dispatch(game.Load{})
	ui.loop()
	logging.Infof("termchess exiting, backend %s", client.BaseURL())
}

type ui struct {
	sess   *game.Session
	cursor cursor
	ctx    context.Context
}

func newUI(sess *game.Session) *ui {
	return &ui{sess: sess, cursor: cursor{file: 4, row: 6}, ctx: context.Background()}
}

// dispatch runs ev in the background so the screen keeps updating while a
// request is in flight.
func (u *ui) dispatch(ev game.Event) {
	go u.sess.Dispatch(u.ctx, ev)
}

func (u *ui) loop() {
	for {
		m, version := u.sess.Model()
		draw(m.View(version), u.cursor)

		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventError:
			logging.Logger.Error().Err(ev.Err).Msg("terminal event")
			return
		case termbox.EventMouse:
			if ev.Key != termbox.MouseLeft {
				continue
			}
			if c, ok := cursorAt(ev.MouseX, ev.MouseY); ok {
				u.cursor = c
				u.dispatch(game.Click{Square: c.square()})
			}
		case termbox.EventKey:
			if !u.handleKey(ev) {
				return
			}
		}
	}
}

// handleKey returns false when the user asked to quit.
func (u *ui) handleKey(ev termbox.Event) bool {
	switch ev.Key {
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return false
	case termbox.KeyArrowUp:
		u.cursor = u.cursor.move(0, -1)
	case termbox.KeyArrowDown:
		u.cursor = u.cursor.move(0, 1)
	case termbox.KeyArrowLeft:
		u.cursor = u.cursor.move(-1, 0)
	case termbox.KeyArrowRight:
		u.cursor = u.cursor.move(1, 0)
	case termbox.KeyEnter, termbox.KeySpace:
		u.dispatch(game.Click{Square: u.cursor.square()})
	}
	switch ev.Ch {
	case 'q':
		return false
	case 'r':
		u.dispatch(game.Restart{})
	case 'l':
		u.dispatch(game.Load{})
	}
	return true
}
