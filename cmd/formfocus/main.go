package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/goliatone/go-formfocus/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		if !errors.Is(err, cli.ErrNotSubmittable) {
			fmt.Fprintf(os.Stderr, "formfocus: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
