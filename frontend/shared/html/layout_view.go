package html

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Page wraps a rendered body in the shared document shell as a templ
// component. Every screen renders through this so a navigation always
// replaces the full previous screen.
func Page(title, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, RenderLayout(title, body))
		return err
	})
}

func RenderLayout(title, body string) string {
	return fmt.Sprintf("<!doctype html><html lang=\"fr\"><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>%s</title><link rel=\"stylesheet\" href=\"/assets/app.css\"></head><body>%s%s</body></html>", title, body, CSRFFormScript())
}
