// Command web runs the DataNiaga validation HTTP server.
package main

import (
	"fmt"
	"os"

	"dataniaga/internal/app"
)

func main() {
	application, err := app.NewApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "server exited with error: %v\n", err)
		os.Exit(1)
	}
}
