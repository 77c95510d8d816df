package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitranim/sqlfrag/internal/cli"
	"github.com/mitranim/sqlfrag/internal/logging"
)

func main() {
	err := cli.NewRootCommand().Execute()
	_ = logging.L.Sync()
	if err == nil {
		return
	}

	// Exit errors have already been reported in the requested format.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
