package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hacksnooze/snooze/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "snooze: %v\n", err)
		os.Exit(1)
	}
	if err := a.Run(os.Args[1:]); err != nil {
		if !errors.Is(err, app.ErrCommandFailed) {
			fmt.Fprintf(os.Stderr, "snooze: %v\n", err)
		}
		os.Exit(1)
	}
}
