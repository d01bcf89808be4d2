package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gopak/ytmsearch/cmd"
	"github.com/gopak/ytmsearch/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Execute(ctx)
	stop()
	if err != nil {
		logging.Error(err.Error())
		logging.Close()
		os.Exit(1)
	}
	logging.Close()
}
