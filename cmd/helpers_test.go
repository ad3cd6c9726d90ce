package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/pterm/pterm"
)

var outBuf bytes.Buffer

// setupStdoutCapture redirects pterm output into outBuf for the
// duration of a test.
func setupStdoutCapture(t *testing.T) {
	t.Helper()
	outBuf.Reset()
	pterm.SetDefaultOutput(&outBuf)
	// Prefix printers copy the default writer at package init, so
	// SetDefaultOutput alone does not redirect them.
	printers := []*pterm.PrefixPrinter{
		&pterm.Info, &pterm.Success, &pterm.Warning, &pterm.Error,
	}
	for _, p := range printers {
		p.Writer = &outBuf
	}
	pterm.DisableColor()
	t.Cleanup(func() {
		pterm.SetDefaultOutput(os.Stdout)
		for _, p := range printers {
			p.Writer = os.Stdout
		}
		pterm.EnableColor()
	})
}
