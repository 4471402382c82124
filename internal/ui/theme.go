package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                   string
	Title, Muted, Accent, Success, Error   string
	Warn                                   string
	CornerTL, CornerTR, CornerBL, CornerBR string
	H, V                                   string
	BarFull, BarEmpty                      string
	SymEmpty                               string // marks items with zero quantity

	// lipgloss colors for the interactive view
	TitleColor, AccentColor, SuccessColor, ErrorColor, WarnColor, BorderColor lipgloss.TerminalColor
}

var current Theme

func init() { SetTheme("classic") }

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Name:  "neon",
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Warn: "\033[93m",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			BarFull: "█", BarEmpty: "░",
			SymEmpty: "◌",

			TitleColor: lipgloss.Color("13"), AccentColor: lipgloss.Color("14"),
			SuccessColor: lipgloss.Color("10"), ErrorColor: lipgloss.Color("9"),
			WarnColor: lipgloss.Color("11"), BorderColor: lipgloss.Color("13"),
		}
	case "mono":
		current = Theme{
			Name:  "mono",
			Title: "", Muted: "", Accent: "", Success: "", Error: "", Warn: "",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			BarFull: "#", BarEmpty: ".",
			SymEmpty: "-",

			TitleColor: lipgloss.NoColor{}, AccentColor: lipgloss.NoColor{},
			SuccessColor: lipgloss.NoColor{}, ErrorColor: lipgloss.NoColor{},
			WarnColor: lipgloss.NoColor{}, BorderColor: lipgloss.NoColor{},
		}
	default: // classic
		current = Theme{
			Name:  "classic",
			Title: bold, Muted: fgGray, Accent: fgBlue,
			Success: fgGreen, Error: fgRed, Warn: fgYellow,
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
			BarFull: "█", BarEmpty: "░",
			SymEmpty: "○",

			TitleColor: lipgloss.NoColor{}, AccentColor: lipgloss.Color("12"),
			SuccessColor: lipgloss.Color("42"), ErrorColor: lipgloss.Color("9"),
			WarnColor: lipgloss.Color("214"), BorderColor: lipgloss.Color("8"),
		}
	}
}

// Expose what renderers need
func Current() Theme { return current }
