package util

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
)

// Max returns the largest integer
func Max(first int, second int) int {
	if first >= second {
		return first
	}
	return second
}

// Min returns the smallest integer
func Min(first int, second int) int {
	if first <= second {
		return first
	}
	return second
}

// Constrain limits the given integer with the upper and lower bounds.
// The lower bound wins when the bounds cross.
func Constrain(val int, min int, max int) int {
	if val > max {
		val = max
	}
	if val < min {
		return min
	}
	return val
}

// DurWithin limits the given time.Duration with the upper and lower bounds
func DurWithin(
	val time.Duration, min time.Duration, max time.Duration) time.Duration {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// IsTty returns true if stdin is a terminal
func IsTty() bool {
	return isatty.IsTerminal(os.Stdin.Fd())
}
