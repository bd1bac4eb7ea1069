// Package diag implements the generator's diagnostic surface: an
// append-only accumulator of compile errors, plus the fatal
// internal-bug path (spec.md §7 "Error handling design").
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/sstadick/erg/hir"
)

// Kind classifies a CompileError into the three categories spec.md §7
// names.
type Kind int

const (
	// FeatureError marks a reachable-but-unsupported construct: an
	// unknown operator, an unsupported match pattern, default values in
	// match. Emission continues with a NOT_IMPLEMENTED placeholder.
	FeatureError Kind = iota
	// CompilerBug marks stack underflow, a non-positive forward line
	// delta, or an invalid final stack size at unit pop. Fatal.
	CompilerBug
	// UserError is a caller-visible compile error unrelated to a
	// generator bug, surfaced for the front-end to print.
	UserError
)

func (k Kind) String() string {
	switch k {
	case FeatureError:
		return "feature-not-implemented"
	case CompilerBug:
		return "compiler-bug"
	case UserError:
		return "user-error"
	default:
		return "unknown"
	}
}

// CompileError is one accumulated diagnostic.
type CompileError struct {
	Kind    Kind
	Loc     hir.Location
	Message string

	// Func, BlockID, and StackLen are only populated for CompilerBug,
	// matching codegen.rs's compiler_bug/stack_bug helpers which tag the
	// function name, unit id, and observed stack height.
	Func     string
	BlockID  int
	StackLen uint32
}

func (e CompileError) Error() string {
	return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Loc.Line, e.Loc.Col, e.Message)
}

// FatalHook is called by Crash instead of terminating the process
// outright, letting an embedder install its own shutdown policy
// (DESIGN NOTES: "an implementer should expose a policy hook rather
// than hard-coding exit"). It defaults to os.Exit(1).
type FatalHook func(code int)

// Diagnostics is the generator's append-only error list plus the
// crash path for internal bugs. Debug controls whether Crash panics
// (mirroring codegen.rs's `cfg!(feature = "debug")` gate) or calls
// the installed FatalHook.
type Diagnostics struct {
	Debug     bool
	OnFatal   FatalHook
	errs      []CompileError
	out       io.Writer
}

// New returns a Diagnostics accumulator that writes flushed errors to
// out (typically os.Stderr) when Crash fires.
func New(out io.Writer, debug bool) *Diagnostics {
	return &Diagnostics{
		Debug: debug,
		OnFatal: func(code int) {
			os.Exit(code)
		},
		out: out,
	}
}

// Push appends a non-fatal diagnostic (FeatureError or UserError).
func (d *Diagnostics) Push(e CompileError) { d.errs = append(d.errs, e) }

// Feature records a feature-not-implemented diagnostic at loc.
func (d *Diagnostics) Feature(loc hir.Location, what string) {
	d.Push(CompileError{Kind: FeatureError, Loc: loc, Message: "feature not implemented: " + what})
}

// All returns every diagnostic accumulated so far, in order.
func (d *Diagnostics) All() []CompileError { return d.errs }

// HasErrors reports whether any diagnostic has been recorded.
func (d *Diagnostics) HasErrors() bool { return len(d.errs) > 0 }

// flushAll writes every accumulated diagnostic to d.out, one per line.
func (d *Diagnostics) flushAll() {
	for _, e := range d.errs {
		fmt.Fprintln(d.out, e.Error())
	}
}

// Crash records a CompilerBug diagnostic, flushes every accumulated
// diagnostic, and then either panics (debug builds) or invokes
// OnFatal(1) — the only way codegen ever terminates mid-pass
// (spec.md §7 "Internal bug").
func (d *Diagnostics) Crash(fn string, blockID int, stackLen uint32, description string) {
	d.Push(CompileError{
		Kind:     CompilerBug,
		Message:  description,
		Func:     fn,
		BlockID:  blockID,
		StackLen: stackLen,
	})
	d.flushAll()
	if d.Debug {
		panic("internal error: " + description)
	}
	d.OnFatal(1)
}
