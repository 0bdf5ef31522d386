package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/samdwyer/pkmnbot/internal/game"
	"github.com/samdwyer/pkmnbot/internal/gamedata"
)

var (
	titleStyle     = tcell.StyleDefault.Reverse(true).Bold(true)
	textStyle      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	ephemeralStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Italic(true)
	imageStyle     = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	buttonStyle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	hintStyle      = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Renderer buffers what a reply presents and draws it on a canvas.
// It implements Presenter.
type Renderer struct {
	canvas    Canvas
	lines     []string
	ephemeral bool
	buttons   []game.Button
	image     string

	glyphStyles map[string]tcell.Style // Type glyph -> type colour
}

// NewRenderer creates a new renderer for the given canvas. Type glyphs found
// in text lines are drawn in their type's colour.
func NewRenderer(canvas Canvas, types *gamedata.TypeRegistry) *Renderer {
	r := &Renderer{canvas: canvas, glyphStyles: make(map[string]tcell.Style)}
	if types != nil {
		for _, t := range types.All() {
			if t.Glyph != "" {
				r.glyphStyles[t.Glyph] = tcell.StyleDefault.Foreground(t.TCellColor())
			}
		}
	}
	return r
}

// RenderText replaces the text area.
func (r *Renderer) RenderText(lines []string, ephemeral bool) error {
	r.lines = lines
	r.ephemeral = ephemeral
	return nil
}

// RenderButtons replaces the button list.
func (r *Renderer) RenderButtons(buttons []game.Button) error {
	r.buttons = buttons
	return nil
}

// RenderImage shows the image URL, since terminals cannot display it.
func (r *Renderer) RenderImage(url string) error {
	r.image = url
	return nil
}

// Reset forgets the previous reply.
func (r *Renderer) Reset() {
	r.lines = nil
	r.ephemeral = false
	r.buttons = nil
	r.image = ""
}

// Buttons returns the buttons currently on screen.
func (r *Renderer) Buttons() []game.Button {
	return r.buttons
}

// Draw paints the buffered reply. When prompt is non-nil a command line is
// shown at the bottom.
func (r *Renderer) Draw(title string, prompt *string) {
	r.canvas.Clear()
	width, height := r.canvas.Size()

	r.drawText(0, 0, fmt.Sprintf(" %-*s", max(0, width-1), title), titleStyle)

	y := 2
	style := textStyle
	if r.ephemeral {
		style = ephemeralStyle
	}
	for _, line := range r.lines {
		r.drawLine(1, y, line, style)
		y++
	}

	if r.image != "" {
		y++
		r.drawText(1, y, "🖼  "+r.image, imageStyle)
		y++
	}

	if len(r.buttons) > 0 {
		y++
		for i, b := range r.buttons {
			r.drawText(1, y, fmt.Sprintf("[%d] %s", i+1, b.Label), buttonStyle)
			y++
		}
	}

	if prompt != nil {
		r.drawText(0, height-1, "> "+*prompt+"_", textStyle)
	} else {
		r.drawText(0, height-1, "1-9 : choisir   : commande   q : quitter", hintStyle)
	}

	r.canvas.Show()
}

// drawText writes s starting at (x, y), one grapheme cluster per cell run.
func (r *Renderer) drawText(x, y int, s string, style tcell.Style) {
	r.draw(x, y, s, func(string) tcell.Style { return style })
}

// drawLine is drawText with type glyphs in their own colour.
func (r *Renderer) drawLine(x, y int, s string, style tcell.Style) {
	r.draw(x, y, s, func(cluster string) tcell.Style {
		if glyph, ok := r.glyphStyles[cluster]; ok {
			return glyph
		}
		return style
	})
}

func (r *Renderer) draw(x, y int, s string, styleOf func(cluster string) tcell.Style) {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		runes := g.Runes()
		r.canvas.SetContent(x, y, runes[0], runes[1:], styleOf(g.Str()))
		x += max(1, g.Width())
	}
}
