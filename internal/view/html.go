package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// WritePage writes the full HTML document hosting the game.
func WritePage(w io.Writer, game Game) error {
	if err := templates.ExecuteTemplate(w, "page.html", game); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	return nil
}

// Fragment renders only the game container, which the page swaps in on every push.
func Fragment(game Game) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "game", game); err != nil {
		return "", fmt.Errorf("failed to render game fragment: %w", err)
	}

	return buf.String(), nil
}
