//go:build windows

package main

import "os"

// shutdownSignals stop the server and abort build and check runs.
// SIGTERM is never delivered on Windows.
var shutdownSignals = []os.Signal{os.Interrupt}
