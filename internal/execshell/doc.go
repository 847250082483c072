// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec behind a CommandRunner abstraction, exposes ShellExecutor
// with logged, observable executions, and defines the command and result types
// pyrel uses to drive python, pip, pytest, and other CLIs in a testable manner.
package execshell
