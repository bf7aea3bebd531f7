// Package render outputs the display buffer of the execution core as text.
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/chip8core/internal/chip8"
	"golang.org/x/term"
)

// Style defines the characters used for pixels.
type Style struct {
	On  string
	Off string
}

// Styles for plain text and terminal output.
var (
	ASCII    = Style{On: "#", Off: "."}
	Blocks   = Style{On: "█", Off: " "}
	Blocks2x = Style{On: "██", Off: "  "}
)

// Renderer writes display buffers to a writer.
type Renderer struct {
	writer io.Writer
	style  Style
	border bool
}

// New returns a renderer for the writer. Terminals get block characters,
// doubled in width if the terminal is wide enough to keep the aspect ratio.
// Any other writer gets plain ASCII output.
func New(writer io.Writer) *Renderer {
	r := &Renderer{
		writer: writer,
		style:  ASCII,
	}

	file, ok := writer.(*os.File)
	if !ok {
		return r
	}
	fd := int(file.Fd())
	if !term.IsTerminal(fd) {
		return r
	}

	r.style = Blocks
	r.border = true
	if width, _, err := term.GetSize(fd); err == nil && width >= 2*chip8.DisplayWidth+2 {
		r.style = Blocks2x
	}
	return r
}

// NewWithStyle returns a renderer using the given style.
func NewWithStyle(writer io.Writer, style Style, border bool) *Renderer {
	return &Renderer{
		writer: writer,
		style:  style,
		border: border,
	}
}

// Render writes the display buffer, one text line per display row.
func (r *Renderer) Render(display []byte) error {
	if len(display) != chip8.DisplaySize {
		return fmt.Errorf("invalid display buffer size %d, expected %d", len(display), chip8.DisplaySize)
	}

	w := bufio.NewWriter(r.writer)
	var horizontal string
	if r.border {
		horizontal = "+" + strings.Repeat("-", chip8.DisplayWidth*len([]rune(r.style.On))) + "+\n"
		_, _ = w.WriteString(horizontal)
	}

	for y := range chip8.DisplayHeight {
		if r.border {
			_ = w.WriteByte('|')
		}
		row := display[y*chip8.DisplayWidth : (y+1)*chip8.DisplayWidth]
		for _, pixel := range row {
			if pixel != 0 {
				_, _ = w.WriteString(r.style.On)
			} else {
				_, _ = w.WriteString(r.style.Off)
			}
		}
		if r.border {
			_ = w.WriteByte('|')
		}
		_ = w.WriteByte('\n')
	}

	if r.border {
		_, _ = w.WriteString(horizontal)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing display: %w", err)
	}
	return nil
}
