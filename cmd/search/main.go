package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/closetscout/backend/cmd/search/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd.ExecuteContext(ctx)
}
