package main

import "errors"

// Process exit codes. Anything uncoded exits 1.
const (
	exitUsage   = 2
	exitConfig  = 3
	exitBackend = 4
)

type exitCoder interface {
	ExitCode() int
}

// exitError attaches an exit code to an error without changing its text.
type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e exitError) Unwrap() error { return e.err }

func (e exitError) ExitCode() int {
	return max(e.code, 1)
}

func withExitCode(err error, code int) error {
	if err == nil {
		return nil
	}
	return exitError{code: code, err: err}
}

func exitCodeForError(err error) int {
	if err == nil {
		return 0
	}
	var coded exitCoder
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return 1
}
