//go:build !windows

package main

import (
	"os"
	"syscall"
)

// shutdownSignals stop the server and abort build and check runs.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
