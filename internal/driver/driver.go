// Package driver runs the checker over source files and turns the outcome
// into a verdict.
package driver

import (
	"fmt"
	"os"

	"toycheck/internal/checker"
	"toycheck/internal/diag"
	"toycheck/internal/symtab"
)

// Verdict is the outcome of checking one source.
type Verdict struct {
	Path string
	Err  error
	// Symbols lists the declarations of an accepted program.
	Symbols []symtab.Named
}

// Valid reports whether the source was accepted.
func (v Verdict) Valid() bool { return v.Err == nil }

// String renders the single user-visible result line.
func (v Verdict) String() string {
	if v.Err == nil {
		return "Valid input"
	}
	return "Invalid input: " + v.Err.Error()
}

// Kind is the kind of the rejecting error, diag.None for a valid source.
func (v Verdict) Kind() diag.Kind {
	return diag.KindOf(v.Err)
}

// ExitCode maps the verdict to a process exit status.
func (v Verdict) ExitCode() int {
	if v.Err == nil {
		return 0
	}
	if code := v.Kind().ExitCode(); code != 0 {
		return code
	}
	return 1
}

// CheckFile loads path and checks it in a fresh session. If the file cannot
// be read the checker is never started.
func CheckFile(path string, opts checker.Options) Verdict {
	src, err := ReadSource(path)
	if err != nil {
		return Verdict{Path: path, Err: err}
	}
	return CheckSource(path, src, opts)
}

// CheckSource checks already loaded text in a fresh session.
func CheckSource(path, src string, opts checker.Options) Verdict {
	c := checker.New(src, opts)
	v := Verdict{Path: path, Err: c.Run()}
	if v.Err == nil {
		v.Symbols = c.Symbols().Entries()
	}
	return v
}

// CheckFiles checks each path independently, in order.
func CheckFiles(paths []string, opts checker.Options) []Verdict {
	verdicts := make([]Verdict, 0, len(paths))
	for _, p := range paths {
		verdicts = append(verdicts, CheckFile(p, opts))
	}
	return verdicts
}

// ReadSource returns the full text of path, or a FileUnreadable error.
func ReadSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", &diag.Error{
			Kind:    diag.FileUnreadable,
			Message: fmt.Sprintf("cannot read %s: %v", path, unwrapPathError(err)),
		}
	}
	return string(b), nil
}

// unwrapPathError drops the op/path prefix os adds, since the message
// already names the file.
func unwrapPathError(err error) error {
	if pe, ok := err.(*os.PathError); ok {
		return pe.Err
	}
	return err
}
