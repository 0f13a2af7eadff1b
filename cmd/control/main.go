// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"control/internal/analysiserr"
	"control/internal/constprop"
	"control/internal/loader"
	"control/internal/report"
)

func main() {
	if len(os.Args) != 3 {
		reportError(analysiserr.Usage("Usage: control <file> <function>"))
		os.Exit(1)
	}

	path := os.Args[1]
	fnName := os.Args[2]

	if err := run(path, fnName); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func run(path, fnName string) error {
	prog, err := loader.LoadFile(path)
	if err != nil {
		return err
	}

	fn, ok := prog.Function(fnName)
	if !ok {
		return analysiserr.Invariant(fmt.Sprintf("no function named %q in %s", fnName, path))
	}

	if err := constprop.ValidateFunction(fn); err != nil {
		return err
	}

	result := constprop.Analyze(prog, fn)
	fmt.Print(report.Format(result))
	color.Green("✅ Analyzed %s in %s", fnName, path)
	return nil
}

// reportError prints a coded analysis error the way the teacher's CLI
// prints a parse error: colored, to stderr.
func reportError(err error) {
	red := color.New(color.FgRed)
	if ae, ok := err.(*analysiserr.Error); ok {
		red.Fprintf(os.Stderr, "[%s] %s\n", ae.Code, ae.Message)
		return
	}
	red.Fprintf(os.Stderr, "Unexpected error: %s\n", err)
}
