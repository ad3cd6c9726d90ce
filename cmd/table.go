package cmd

import "github.com/pterm/pterm"

// PrintTableNoPad renders a table without the default leading padding,
// so output lines up with pterm's prefixed printers.
func PrintTableNoPad(data pterm.TableData, hasHeader bool) {
	_ = pterm.DefaultTable.
		WithHasHeader(hasHeader).
		WithData(data).
		Render()
}
