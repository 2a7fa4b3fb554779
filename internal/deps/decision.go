// SPDX-License-Identifier: MPL-2.0

package deps

// Decision records whether the user wants the manifest installed.
type Decision int

const (
	// Install installs the manifest.
	Install Decision = iota + 1
	// Skip leaves the environment empty.
	Skip
)

func (d Decision) String() string {
	switch d {
	case Install:
		return "install"
	case Skip:
		return "skip"
	default:
		return "unknown"
	}
}
