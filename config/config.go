// Package config holds the small configuration record the generator
// needs from its caller: the input descriptor and a debug toggle
// (spec.md §6 "Input contract").
package config

// Input describes the source file being compiled.
type Input struct {
	// EnclosedName is the filename recorded as co_filename.
	EnclosedName string
	// IsREPL selects the print-last-value stitching of spec.md §4.8.
	IsREPL bool
}

// Config is passed to the generator at construction time.
type Config struct {
	Input Input
	// Debug gates both verbose logging (internal/codegenlog) and the
	// panic-vs-exit choice a fatal diagnostic makes (diag.Diagnostics).
	Debug bool
}
