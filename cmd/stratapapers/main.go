// Command stratapapers serves the past papers site.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dalemusser/stratapapers/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		fmt.Fprintln(os.Stderr, "stratapapers:", err)
		os.Exit(1)
	}
}
