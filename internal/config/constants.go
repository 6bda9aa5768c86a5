// Package config holds compile-time constants shared across the pipeline.
package config

// Version is the current vuglang version.
var Version = "0.1.0"

const SourceFileExt = ".vg"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".vg", ".vugl"}

// HasSourceExt returns true if path ends with any recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// MainFunctionName is the entry point the evaluator looks up on the module.
const MainFunctionName = "main"

// MaxRecursionDepth bounds recursive-descent parsing and tree-walking
// evaluation so a malicious or pathological program fails with a diagnostic
// instead of crashing the host process.
const MaxRecursionDepth = 4000
