package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/saju/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || !exitErr.Reported {
		fmt.Fprintln(os.Stderr, "saju:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
