// Package platform maps the Go runtime's OS and architecture identifiers to
// the vocabulary used by version descriptors, and exposes the few
// platform-dependent constants the launch pipeline needs.
package platform

import (
	"os"
	"runtime"
)

// Platform identifies the OS and architecture a rule or classifier is
// evaluated against. It is a plain value so tests can evaluate descriptors
// for platforms other than the host.
type Platform struct {
	OS   string
	Arch string
}

// Current returns the host platform in descriptor vocabulary.
func Current() Platform {
	return Platform{OS: osName(), Arch: archName()}
}

// osName translates runtime.GOOS into descriptor OS names. Descriptors use
// "osx" rather than "darwin", and anything that is not windows or mac is
// treated as linux.
func osName() string {
	switch runtime.GOOS {
	case "windows":
		return "windows"
	case "darwin":
		return "osx"
	default:
		return "linux"
	}
}

// archName translates runtime.GOARCH into descriptor architecture names.
func archName() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x64"
	case "386":
		return "x86"
	case "arm64":
		return "arm64"
	case "arm":
		return "arm32"
	default:
		return runtime.GOARCH
	}
}

// ListSeparator returns the path-list separator used when joining classpath
// entries: ";" on Windows, ":" elsewhere.
func ListSeparator() string {
	return string(os.PathListSeparator)
}

// IsWindows reports whether the host is Windows. Used for the console-window
// suppression flag and the Windows-only legacy JVM arguments.
func IsWindows() bool {
	return runtime.GOOS == "windows"
}

// IsMac reports whether the host is macOS, which requires -XstartOnFirstThread.
func IsMac() bool {
	return runtime.GOOS == "darwin"
}
