package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/stock-gateway/internal/app"
	"github.com/yungbote/stock-gateway/internal/platform/shutdown"
)

func main() {
	a, err := app.NewGateway(context.Background())
	if err != nil {
		fmt.Printf("failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := shutdown.Context(context.Background(), func(sig os.Signal) {
		a.Log.Info("shutdown signal received", "signal", sig.String())
	})
	defer stop()

	runErr := a.Run(ctx)

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	a.Close(closeCtx)
	cancel()

	if runErr != nil {
		fmt.Printf("server exited: %v\n", runErr)
		os.Exit(1)
	}
}
