package main

import (
	"fmt"
	"io"
	"os"
	"time"
)

const VERSION = "0.1.0"

// exitUsage is returned for bad flags or arguments.
const exitUsage = 64

func main() {
	start := time.Now()
	exitCode := run(os.Args[1:], os.Stdout, os.Stderr)
	if debugEnabled(os.Args[1:]) {
		fmt.Fprintf(os.Stderr, "[DEBUG] Check time: %s\n", time.Since(start))
	}
	os.Exit(exitCode)
}

func run(args []string, stdout, stderr io.Writer) int {
	c := newCLI(stdout, stderr)
	cmd := c.command()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error: "+err.Error())
		return exitUsage
	}
	return c.exitCode
}

// debugEnabled checks for --debug without going through flag parsing, so
// the timing line can be printed after the command has finished.
func debugEnabled(args []string) bool {
	for _, arg := range args {
		if arg == "--debug" {
			return true
		}
	}
	return false
}
