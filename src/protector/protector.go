//go:build !openbsd

// Package protector applies OS specific process restrictions
package protector

// Protect does nothing on this platform
func Protect() {}
