// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"path/filepath"
	"strings"
)

// WindowsReservedNames are device names Windows refuses as file or directory
// names, whatever the extension.
var WindowsReservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"COM5": true, "COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true,
	"LPT5": true, "LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// IsWindowsReservedName reports whether name is a reserved device name. Only
// the part before the first dot counts, so "nul.txt" is reserved too.
func IsWindowsReservedName(name string) bool {
	upper := strings.ToUpper(name)
	if idx := strings.Index(upper, "."); idx != -1 {
		upper = upper[:idx]
	}
	return WindowsReservedNames[strings.TrimRight(upper, " ")]
}

// ReservedPathElement returns the first element of a slash or backslash
// separated path that Windows would reject, or "" when there is none.
func ReservedPathElement(path string) string {
	normalized := strings.ReplaceAll(filepath.ToSlash(path), `\`, "/")
	for _, elem := range strings.Split(normalized, "/") {
		if IsWindowsReservedName(elem) {
			return elem
		}
	}
	return ""
}
