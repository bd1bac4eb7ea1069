// Command ergc drives the code generator over a small set of built-in
// demo programs, printing disassembled bytecode or running it through
// the reference interpreter in internal/vmdemo.
package main

func main() {
	Execute()
}
