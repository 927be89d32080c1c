// internal/app/features/examboards/templates.go
package examboards

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "examboards",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
