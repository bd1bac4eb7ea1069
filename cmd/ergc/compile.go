package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sstadick/erg/codeobj"
	"github.com/sstadick/erg/compiler"
	"github.com/sstadick/erg/config"
	"github.com/sstadick/erg/internal/vmdemo"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] demo-name",
	Short: "Compile one of the built-in demo programs and disassemble it.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		runCompile(cmd, args[0], GetFlag(cmd, "run"))
	},
}

var disasmCmd = &cobra.Command{
	Use:   "disasm demo-name",
	Short: "Compile a demo program and print its bytecode listing only.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		runCompile(cmd, args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(disasmCmd)
	compileCmd.Flags().Bool("run", false, "execute the compiled code object with the reference interpreter")
	compileCmd.Flags().Bool("repl", false, "compile as a REPL single-expression unit (auto-print result)")
	disasmCmd.Flags().Bool("repl", false, "compile as a REPL single-expression unit (auto-print result)")
}

func runCompile(cmd *cobra.Command, name string, run bool) {
	configureLogging(cmd)

	build, ok := demos[name]
	if !ok {
		fmt.Println(demoUsageError(name))
		os.Exit(1)
	}
	mod := build()

	cfg := config.Config{
		Input: config.Input{EnclosedName: name + ".er", IsREPL: GetFlag(cmd, "repl")},
		Debug: GetFlag(cmd, "debug"),
	}

	gen := compiler.New(cfg)
	obj := gen.Codegen(mod)

	for _, e := range gen.Errs.All() {
		log.Warn(e.Error())
	}

	if run {
		machine := vmdemo.New()
		result, err := machine.Run(obj, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("=> %s\n", result)
		return
	}

	disassemble(obj)
}

// disassemble prints obj's bytecode, prefixed with a bolded banner
// when stdout is a real terminal.
func disassemble(obj *codeobj.CodeObj) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Printf("\x1b[1m== %s ==\x1b[0m\n", obj.Name)
	}
	obj.Disassemble(os.Stdout)
}
