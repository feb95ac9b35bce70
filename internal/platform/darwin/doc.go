//go:build darwin

// Package darwin implements the platform capabilities for macOS hosts
// running the iOS Simulator. Tree reads and input injection use the
// Accessibility and CoreGraphics APIs through CGo; device management
// shells out to simctl. When CGo is disabled, the package compiles as a
// no-op stub.
package darwin
