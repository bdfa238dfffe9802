package format

import "github.com/fatih/color"

var (
	idColor     = []color.Attribute{color.FgYellow}
	ageColor    = []color.Attribute{color.FgCyan}
	sourceColor = []color.Attribute{color.FgMagenta}
	titleColor  = []color.Attribute{color.FgHiBlue, color.Bold}
	labelColor  = []color.Attribute{color.Bold}
	dimColor    = []color.Attribute{color.Faint}
)

// paint renders text with attrs when useColors is set. Colors are forced on
// so the caller's choice wins over fatih/color's own terminal detection.
func paint(text string, attrs []color.Attribute, useColors bool) string {
	if !useColors || text == "" {
		return text
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}
