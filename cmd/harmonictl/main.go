// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command harmonictl is the operator CLI for the Harmonia API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/taibuivan/harmonia/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "harmonictl:", err)
		os.Exit(cli.ExitCode(err))
	}
}
