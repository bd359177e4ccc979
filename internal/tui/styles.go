package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	colorText   = lipgloss.Color("#FAFAFA")
	colorAccent = lipgloss.Color("#7D56F4")
	colorMint   = lipgloss.Color("#96CEB4")
	colorGold   = lipgloss.Color("#FFD700")
	colorRed    = lipgloss.Color("#FF6B6B")
	colorViolet = lipgloss.Color("#C792EA")
	colorMuted  = lipgloss.Color("#626262")
	colorGreen  = lipgloss.Color("#04B575")
	colorFlame  = lipgloss.Color("#FF4500")
	colorSand   = lipgloss.Color("#FFEAA7")
	colorSky    = lipgloss.Color("#4FC1FF")
)

func bold(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

// Content styles used in the log and sidebar.
var (
	HeaderStyle    = bold(colorText).Background(colorAccent)
	HandInfoStyle  = bold(colorMint)
	ActionsStyle   = bold(colorGold)
	RedCardStyle   = bold(colorRed)
	BlackCardStyle = bold(colorText)
	WildCardStyle  = bold(colorViolet)
	DeadCardStyle  = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)
	HeldStyle      = bold(colorGreen)
	DevilStyle     = bold(colorFlame)
	SuccessStyle   = bold(colorMint)
	ErrorStyle     = bold(colorRed)
	WarningStyle   = bold(colorSand)
	InfoStyle      = lipgloss.NewStyle().Foreground(colorMuted)
)

// rarityColors colors shop items by tier, common first.
var rarityColors = []lipgloss.Color{colorText, colorSky, colorViolet, colorGold}

func rarityStyle(tier int) lipgloss.Style {
	c := rarityColors[0]
	if tier >= 1 && tier <= len(rarityColors) {
		c = rarityColors[tier-1]
	}
	return lipgloss.NewStyle().Foreground(c).Bold(tier > 1)
}

// DisableColor renders every style as plain text.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
