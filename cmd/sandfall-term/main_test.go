package main

import (
	"os"
	"slices"
	"syscall"
	"testing"
)

func TestShutdownSignals(t *testing.T) {
	for _, sig := range []os.Signal{os.Interrupt, syscall.SIGTERM} {
		if !slices.Contains(shutdownSignals, sig) {
			t.Fatalf("%v does not end the session", sig)
		}
	}
}
