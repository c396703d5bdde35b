package render

import (
	"image/color"
	"io"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// DefaultRenderer draws into a terminal with cursor addressing. Nothing is
// written until Flush.
type DefaultRenderer struct {
	Out io.Writer
	Fd  int // terminal to put in raw mode and size, -1 for none

	buffer       strings.Builder
	restoreState *term.State
	decorations  []*decoration
}

type decoration struct {
	X, Y    int
	Content string
	Frames  int // remaining frames until removed
}

func New(out io.Writer, fd int) *DefaultRenderer {
	return &DefaultRenderer{Out: out, Fd: fd}
}

func (r *DefaultRenderer) Init() error {
	if r.Fd >= 0 && term.IsTerminal(r.Fd) {
		state, err := term.MakeRaw(r.Fd)
		if nil != err {
			return err
		}
		r.restoreState = state
	}

	r.buffer.WriteString("\033[?1049h") // Enable alternate buffer
	r.buffer.WriteString("\033[?25l")   // Make the cursor invisible
	r.buffer.WriteString("\033[2J")     // Clear the screen
	return r.Flush()
}

func (r *DefaultRenderer) Deinit() error {
	r.buffer.WriteString("\033[?1049l") // Disable alternate buffer
	r.buffer.WriteString("\033[?25h")   // Make the cursor visible
	err := r.Flush()
	if nil != r.restoreState {
		if rerr := term.Restore(r.Fd, r.restoreState); nil != rerr {
			return rerr
		}
	}
	return err
}

// Size falls back to 80x24 when there is no terminal to ask.
func (r *DefaultRenderer) Size() (int, int) {
	if r.Fd >= 0 {
		if w, h, err := term.GetSize(r.Fd); nil == err {
			return w, h
		}
	}
	return 80, 24
}

func (r *DefaultRenderer) AddDecoration(col, row int, content string, frames int) {
	r.decorations = append(r.decorations, &decoration{
		X:       col,
		Y:       row,
		Content: content,
		Frames:  frames,
	})
	r.Fill(row, col, content)
}

func (r *DefaultRenderer) tickDecorations() {
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.Frames == 0 {
			r.Fill(d.Y, d.X, strings.Repeat(" ", visibleLen(d.Content)))
			continue
		}
		nd = append(nd, d)
		d.Frames--
	}
	r.decorations = nd
}

func (r *DefaultRenderer) Fill(row, column int, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.Itoa(row))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(column))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) FillColor(row, column int, c color.RGBA, message string) {
	r.Fill(row, column, "\033[38;2;")
	r.buffer.WriteString(strconv.Itoa(int(c.R)))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(int(c.G)))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(int(c.B)))
	r.buffer.WriteString("m")
	r.buffer.WriteString(message)
	r.buffer.WriteString("\033[0m")
}

// Flush ages the decorations and writes out everything drawn since the last
// flush.
func (r *DefaultRenderer) Flush() error {
	r.tickDecorations()
	_, err := io.WriteString(r.Out, r.buffer.String())
	r.buffer.Reset()
	return err
}

// visibleLen counts the runes of s outside of escape sequences.
func visibleLen(s string) int {
	n, esc := 0, false
	for _, c := range s {
		switch {
		case esc:
			if c >= '@' && c <= '~' && c != '[' {
				esc = false
			}
		case c == '\033':
			esc = true
		default:
			n++
		}
	}
	return n
}
