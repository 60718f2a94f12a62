package main

import (
	"context"

	"github.com/joho/godotenv"

	"loanservicing/internal/app/runtime"
	"loanservicing/internal/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Local development overrides. Missing .env is fine.
	_ = godotenv.Load()

	app, err := runtime.New(ctx)
	if err != nil {
		logger.CtxError(ctx, "failed to initialize app", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		logger.CtxError(ctx, "app stopped with error", err)
		return
	}
}
