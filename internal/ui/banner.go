package ui

import (
	"io"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

// PrintBanner displays the application banner
func PrintBanner(w io.Writer, silence bool) {
	if silence {
		return
	}
	banner, err := pterm.DefaultBigText.
		WithLetters(
			putils.LettersFromStringWithStyle("JOB", pterm.FgCyan.ToStyle()),
			putils.LettersFromStringWithStyle("INSIGHTS", pterm.FgLightMagenta.ToStyle()),
		).
		Srender()
	if err != nil {
		return
	}
	pterm.Fprintln(w, banner)
}
