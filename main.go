package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/pyrel/cmd/cli"
	"github.com/temirov/pyrel/internal/workflow"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the pyrel command-line application.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}

	fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)

	var exitCodeError workflow.ExitCodeError
	if errors.As(executionError, &exitCodeError) && exitCodeError.Code > 0 {
		os.Exit(exitCodeError.Code)
	}
	os.Exit(1)
}
