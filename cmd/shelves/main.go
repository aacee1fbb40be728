package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cc := newCommandContext()
	err := fang.Execute(ctx, newRootCommand(cc))
	cc.close()
	if err != nil {
		os.Exit(1)
	}
}
