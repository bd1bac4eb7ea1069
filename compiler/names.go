package compiler

import "strings"

// builtinNames remaps source-language builtins to their VM-builtin
// spelling (spec.md §6 "Builtin remapping (closed table)"). assert,
// discard, for, if, and match are intrinsics implemented directly in
// bytecode and never reach this table (see lowerCallName).
var builtinNames = map[string]string{
	"abs":      "abs",
	"classof":  "type",
	"compile":  "compile",
	"id":       "id",
	"import":   "__import__",
	"input!":   "input",
	"log":      "print", // TODO: log != print (prints after executing)
	"print!":   "print",
	"py":       "__import__",
	"pyimport": "__import__",
	"quit":     "quit",
	"exit":     "quit",
}

func convertToVMName(name string) string {
	if mapped, ok := builtinNames[name]; ok {
		return mapped
	}
	return name
}

// escapeName applies the builtin remap then the sigil escape, matching
// codegen.rs's escape_name.
func (g *Generator) escapeName(name string) string {
	return escapeSigils(convertToVMName(name))
}

// attrRemapKey identifies one (class, uniqObjName, attr) remap case.
type attrRemapKey struct {
	class       string
	uniqObjName string // "" matches any
	attr        string
}

var attrRemaps = map[attrRemapKey]string{
	{"Array!", "", "push!"}:          "append",
	{"Complex", "", "Real"}:          "real",
	{"Real", "", "Real"}:             "real",
	{"Int", "", "Real"}:              "real",
	{"Nat", "", "Real"}:              "real",
	{"Float", "", "Real"}:            "real",
	{"Complex", "", "Imag"}:          "imag",
	{"Real", "", "Imag"}:             "imag",
	{"Int", "", "Imag"}:              "imag",
	{"Nat", "", "Imag"}:              "imag",
	{"Float", "", "Imag"}:            "imag",
	{"Module", "random", "randint!"}: "randint",
	{"Module", "random", "choice!"}:  "choice",
}

// convertToVMAttr implements spec.md §4.1/§6's container-specific
// attribute remap table, e.g. `Array!.push! -> append`.
func convertToVMAttr(class, uniqObjName, name string) string {
	if mapped, ok := attrRemaps[attrRemapKey{class, uniqObjName, name}]; ok {
		return mapped
	}
	return name
}

// escapeAttr applies the attribute remap then the sigil escape,
// matching codegen.rs's escape_attr.
func (g *Generator) escapeAttr(class, uniqObjName, name string) string {
	return escapeSigils(convertToVMAttr(class, uniqObjName, name))
}

// escapeSigils escapes the two reserved sigils erg identifiers may
// carry into legal target-language identifier text (spec.md §6
// "Identifier escaping (bit-exact)").
func escapeSigils(name string) string {
	name = strings.ReplaceAll(name, "!", "__erg_proc__")
	name = strings.ReplaceAll(name, "$", "__erg_shared__")
	return name
}
