//go:build deadlock
// +build deadlock

package syncutils

import (
	"sync"

	"github.com/sasha-s/go-deadlock"
)

// Mutex reports potential deadlocks when built with -tags deadlock.
type Mutex struct {
	deadlock.Mutex
}

var _ sync.Locker = &Mutex{}
