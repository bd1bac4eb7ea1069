// Package codegenlog wraps logrus with the handful of structured
// breadcrumbs the code generator emits: pass start/completion, and
// unit push/pop. Grounded on Consensys-go-corset's use of
// github.com/sirupsen/logrus for its own compiler pipeline logging;
// see DESIGN.md.
package codegenlog

import "github.com/sirupsen/logrus"

// Logger is a thin facade over a *logrus.Logger so the generator does
// not depend on logrus directly in its hot-path files.
type Logger struct {
	l *logrus.Logger
}

// New returns a Logger. When debug is false the underlying logrus
// level is raised above Info so these breadcrumbs are silent by
// default, mirroring codegen.rs's log! macro being a no-op unless the
// "debug" Cargo feature is enabled.
func New(debug bool) *Logger {
	l := logrus.New()
	if debug {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.WarnLevel)
	}
	return &Logger{l: l}
}

// Started logs that the code-generating process has begun.
func (lg *Logger) Started() {
	lg.l.Debug("the code-generating process has started")
}

// Completed logs that the code-generating process has finished.
func (lg *Logger) Completed() {
	lg.l.Debug("the code-generating process has completed")
}

// UnitPushed logs a nested unit being pushed onto the unit stack.
func (lg *Logger) UnitPushed(id int, name string, firstline uint32) {
	lg.l.WithFields(logrus.Fields{
		"unit":      id,
		"name":      name,
		"firstline": firstline,
	}).Debug("pushed code unit")
}

// UnitPopped logs a nested unit being popped back to its parent.
func (lg *Logger) UnitPopped(id int, name string) {
	lg.l.WithFields(logrus.Fields{
		"unit": id,
		"name": name,
	}).Debug("popped code unit")
}

// Warn surfaces a non-fatal oddity (e.g. a diagnostic pushed mid-pass)
// without stopping codegen.
func (lg *Logger) Warn(msg string) {
	lg.l.Warn(msg)
}
