//go:build !deadlock
// +build !deadlock

package syncutils

import "sync"

type Mutex struct {
	sync.Mutex
}

var _ sync.Locker = &Mutex{}
