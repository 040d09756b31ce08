package main

import (
	"fmt"
	"os"

	"cosmopoeia/internal/errs"
	"cosmopoeia/internal/logging"
)

func main() {
	logging.Init()
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, oneLine(err))
		os.Exit(errs.ExitCode(err))
	}
}

// oneLine renders an error as spec §7's required single line: stage,
// command/tile context, cause, no stack dump.
func oneLine(err error) string {
	return err.Error()
}
