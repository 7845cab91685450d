// Package render draws tuner readings as large ASCII glyphs on a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/cwbudde/algo-tuner/music/note"
)

// ClearScreen erases the terminal and homes the cursor.
const ClearScreen = "\x1b[2J\x1b[1;1H"

// Renderer writes frames to an io.Writer. It is not safe for concurrent use.
type Renderer struct {
	w     io.Writer
	clear bool

	inTune *color.Color
	close  *color.Color
	off    *color.Color
	title  *color.Color
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithColor forces colour output on or off. Without it, colour follows the
// terminal detection of the color package.
func WithColor(enabled bool) Option {
	return func(r *Renderer) {
		for _, c := range r.palette() {
			if enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

// WithClear controls whether each frame starts by clearing the screen.
func WithClear(enabled bool) Option {
	return func(r *Renderer) {
		r.clear = enabled
	}
}

// New returns a Renderer writing to w.
func New(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		w:      w,
		clear:  true,
		inTune: color.New(color.FgGreen, color.Bold),
		close:  color.New(color.FgYellow, color.Bold),
		off:    color.New(color.FgRed, color.Bold),
		title:  color.New(color.FgRed),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) palette() []*color.Color {
	return []*color.Color{r.inTune, r.close, r.off, r.title}
}

// Greeting draws the start-up banner.
func (r *Renderer) Greeting() error {
	var b strings.Builder
	r.startFrame(&b)
	b.WriteString(r.title.Sprint(banner))
	return r.flush(&b)
}

// Note draws one reading. Flat notes show the flat marker above the glyph;
// sharp or exact notes show the sharp marker below it.
func (r *Renderer) Note(n note.Note) error {
	c := r.colorFor(n.Band())

	var b strings.Builder
	r.startFrame(&b)
	if n.Flat() {
		b.WriteString(c.Sprint(flatGlyph))
	} else {
		b.WriteString(strings.Repeat("\n", strings.Count(flatGlyph, "\n")))
	}
	b.WriteString(c.Sprint(Glyph(n.Class)))
	if !n.Flat() {
		b.WriteString(c.Sprint(sharpGlyph))
	}
	fmt.Fprintf(&b, "\n%s  %.2f Hz (target %.2f Hz)\n", c.Sprint(n.String()), n.Frequency, n.Target)

	return r.flush(&b)
}

// Line writes a plain status line without clearing the screen.
func (r *Renderer) Line(format string, args ...any) error {
	_, err := fmt.Fprintf(r.w, format+"\n", args...)
	return err
}

// Glyph returns the ASCII art for a pitch class, 0 being C.
func Glyph(class int) string {
	return noteGlyphs[((class%12)+12)%12]
}

func (r *Renderer) colorFor(b note.Band) *color.Color {
	switch b {
	case note.InTune:
		return r.inTune
	case note.Close:
		return r.close
	default:
		return r.off
	}
}

func (r *Renderer) startFrame(b *strings.Builder) {
	if r.clear {
		b.WriteString(ClearScreen)
	}
}

func (r *Renderer) flush(b *strings.Builder) error {
	_, err := io.WriteString(r.w, b.String())
	return err
}
