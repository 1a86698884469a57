package util

import (
	"sync/atomic"
)

// AtomicBool is a boxed-class that provides synchronized access to the
// underlying boolean value
type AtomicBool struct {
	state int32 // "1" is true, "0" is false
}

// NewAtomicBool returns a new AtomicBool
func NewAtomicBool(initialState bool) *AtomicBool {
	var state int32
	if initialState {
		state = 1
	}
	return &AtomicBool{state: state}
}

// Get returns the current boolean value synchronously
func (a *AtomicBool) Get() bool {
	return atomic.LoadInt32(&a.state) != 0
}

// Set updates the boolean value synchronously
func (a *AtomicBool) Set(newState bool) bool {
	var state int32
	if newState {
		state = 1
	}
	atomic.StoreInt32(&a.state, state)
	return newState
}
