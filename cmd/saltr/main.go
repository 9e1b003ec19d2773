package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/zarlcorp/core/pkg/zapp"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := zapp.New(zapp.WithName("saltr"))

	ctx, cancel := zapp.SignalContext(context.Background())
	defer cancel()

	err := newRootCmd().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "saltr: %v\n", err)
		_ = app.Close()
		os.Exit(1)
	}

	if err := app.Close(); err != nil {
		slog.Error("shutdown", "err", err)
		os.Exit(1)
	}
}
