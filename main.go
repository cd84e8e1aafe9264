package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/funil/cmd"
	"github.com/thenoetrevino/funil/internal/cli"
)

func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		var exitErr *cli.ExitCodeError
		// formatted errors were already printed by the command
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.ExitCodeOf(err))
	}
}
