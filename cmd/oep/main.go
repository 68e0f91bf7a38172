// Package main is the entry point for the oep CLI.
package main

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/obtainium-emulation-pack/oep/internal/cmd"
	oerrors "github.com/obtainium-emulation-pack/oep/internal/errors"
	"github.com/obtainium-emulation-pack/oep/internal/version"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	info := version.Get()

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(info.Short()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		os.Exit(oerrors.ExitCodeFromError(err))
	}
}

// handleError skips errors the command already reported.
func handleError(w io.Writer, styles fang.Styles, err error) {
	if oerrors.IsPrinted(err) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
