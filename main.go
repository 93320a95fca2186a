package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/firefly-engineering/sphinx-me/cmd"
	"github.com/firefly-engineering/sphinx-me/internal/errors"
	"github.com/firefly-engineering/sphinx-me/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		logging.UserError("%v", err)
		os.Exit(errors.GetExitCode(err))
	}
}
