package config

import "path/filepath"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".lang", ".funxy", ".fx"}

// IsSourceFile reports whether path has a recognized source extension.
func IsSourceFile(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range SourceFileExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// IsTestMode indicates if the program is running in test mode.
// Type variables print in normalized form while it is set.
var IsTestMode = false

// IsLSPMode is set by tools that render types for an editor.
var IsLSPMode = false

// ListTypeName is the built-in list constructor; List<Char> prints as String.
const ListTypeName = "List"

// Defaults for Config fields left empty.
const (
	DefaultQueueCapacity = 4096
	DefaultLogLevel      = "info"
	DefaultStorePath     = ":memory:"
)

// Environment variables that override values from the config file.
const (
	EnvStorePath = "FXQUERY_DB"
	EnvLogLevel  = "FXQUERY_LOG_LEVEL"
)
