// Package ui provides a terminal preview of creatures using tcell.
package ui

import "github.com/gdamore/tcell/v2"

// Action is what the preview does in response to terminal input.
type Action int

const (
	ActionRedraw Action = iota // the terminal was resized
	ActionNext                 // show creatures for the next seed
	ActionQuit
)

// Screen is the terminal surface the preview draws creatures on.
type Screen struct {
	screen tcell.Screen
}

// NewScreen opens the controlling terminal.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewScreenFrom(s)
}

// NewScreenFrom initializes and wraps an existing tcell screen, such as a
// simulation screen.
func NewScreenFrom(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close finalizes the screen and restores terminal state.
func (s *Screen) Close() {
	s.screen.Fini()
}

// Size returns the current terminal dimensions in cells.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// Frame clears the buffer, runs draw and flushes the result.
func (s *Screen) Frame(draw func()) {
	s.screen.Clear()
	draw()
	s.screen.Show()
}

// SetCell puts one rune at x, y.
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// SetText writes text from x along row y, clipped to the screen width.
func (s *Screen) SetText(x, y int, text string, style tcell.Style) {
	w, _ := s.screen.Size()
	for _, ch := range text {
		if x >= w {
			return
		}
		s.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

// WaitAction blocks until an event the preview reacts to arrives. Keys other
// than r, space, q, Esc and Ctrl-C are ignored. A closed event stream quits.
func (s *Screen) WaitAction() Action {
	for {
		switch ev := s.screen.PollEvent().(type) {
		case nil:
			return ActionQuit
		case *tcell.EventResize:
			s.screen.Sync()
			return ActionRedraw
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return ActionQuit
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'q', 'Q':
					return ActionQuit
				case 'r', 'R', ' ':
					return ActionNext
				}
			}
		}
	}
}
