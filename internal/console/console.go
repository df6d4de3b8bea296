// Package console owns the terminal: it decodes key presses into commands
// and shows log output in a scrolling view.
package console

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"
)

const maxLines = 512

type line struct {
	level slog.Level
	text  string
}

// Console wraps a tcell screen. Commands are buffered so the tick loop can
// drain them without blocking.
type Console struct {
	screen tcell.Screen
	cmds   chan Command
	done   chan struct{}
	log    *slog.Logger

	mu     sync.Mutex
	lines  []line
	closed bool

	closeOnce sync.Once
}

// Open initializes the terminal screen.
func Open(level slog.Leveler) (*Console, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("console: create screen: %w", err)
	}
	return New(s, level)
}

// New initializes s and wraps it. Key presses that decode to nothing are
// logged at debug level through the console's own handler.
func New(s tcell.Screen, level slog.Leveler) (*Console, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("console: init screen: %w", err)
	}
	s.Clear()
	c := &Console{screen: s, cmds: make(chan Command, 64), done: make(chan struct{})}
	c.log = slog.New(NewHandler(c, level))
	return c, nil
}

// Logger returns a logger writing into the console view.
func (c *Console) Logger() *slog.Logger { return c.log }

// Run pumps terminal events until the screen is closed or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	for {
		ev := c.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			cmd, ok := Decode(ev)
			if !ok {
				c.log.Debug("unhandled key", "key", ev.Name())
				continue
			}
			select {
			case c.cmds <- cmd:
			case <-c.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		case *tcell.EventResize:
			c.mu.Lock()
			c.screen.Sync()
			c.draw()
			c.mu.Unlock()
		default:
			c.log.Debug("unhandled event", "event", fmt.Sprintf("%T", ev))
		}
	}
}

// Poll returns the next pending command without blocking.
func (c *Console) Poll() (Command, bool) {
	select {
	case cmd := <-c.cmds:
		return cmd, true
	default:
		return 0, false
	}
}

// Close restores the terminal. Run returns once it observes the close.
func (c *Console) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		close(c.done)
		c.screen.Fini()
	})
}

// Lines returns the buffered log text, oldest first.
func (c *Console) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	for i, l := range c.lines {
		out[i] = l.text
	}
	return out
}

func (c *Console) append(level slog.Level, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line{level: level, text: text})
	if len(c.lines) > maxLines {
		c.lines = append(c.lines[:0], c.lines[len(c.lines)-maxLines:]...)
	}
	c.draw()
}

func styleFor(level slog.Level) tcell.Style {
	switch {
	case level >= slog.LevelError:
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	case level >= slog.LevelWarn:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	case level >= slog.LevelInfo:
		return tcell.StyleDefault.Foreground(tcell.ColorWhite)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
}

// draw renders the newest lines that fit. Callers hold mu.
func (c *Console) draw() {
	if c.closed {
		return
	}
	w, h := c.screen.Size()
	c.screen.Clear()
	first := max(len(c.lines)-h, 0)
	for row, l := range c.lines[first:] {
		style := styleFor(l.level)
		x := 0
		for _, r := range l.text {
			if x >= w {
				break
			}
			c.screen.SetContent(x, row, r, nil, style)
			x++
		}
	}
	c.screen.Show()
}
