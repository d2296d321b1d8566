package draw

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Ink identifies what a canvas pixel depicts; the palette maps it to a colour.
type Ink uint8

const (
	InkNone Ink = iota
	InkDefault
	InkShip
	InkShade
	InkSol
	InkCharge
	InkShadow   // Solid shadow block
	InkHazard   // Lethal fire block
	InkAsteroid // Inert rock
	InkBarrier  // Destructible barrier
	InkWin
	InkBullet
	InkSpark

	numInks
)

// Colours used across the game, as hex strings.
const (
	ColorBackground = "#0b0d17"
	ColorShip       = "#e8e8e8"
	ColorShade      = "#9b5cff"
	ColorSol        = "#ff9a1f"
	ColorCharge     = "#2fb4ff"
	ColorShadow     = "#4b347a"
	ColorHazard     = "#ff3b2f"
	ColorAsteroid   = "#8c8c8c"
	ColorBarrier    = "#2f5cff"
	ColorWin        = "#3dff7a"
	ColorBullet     = "#9fe8ff"
	ColorSpark      = "#ffe066"
)

var inkColors = [numInks]string{
	InkDefault:  ColorShip,
	InkShip:     ColorShip,
	InkShade:    ColorShade,
	InkSol:      ColorSol,
	InkCharge:   ColorCharge,
	InkShadow:   ColorShadow,
	InkHazard:   ColorHazard,
	InkAsteroid: ColorAsteroid,
	InkBarrier:  ColorBarrier,
	InkWin:      ColorWin,
	InkBullet:   ColorBullet,
	InkSpark:    ColorSpark,
}

// Palette turns inks into terminal colour sequences for a fixed colour
// profile, and carries the lipgloss styles used for HUD text.
type Palette struct {
	profile  termenv.Profile
	fg       [numInks]string
	bg       [numInks]string
	renderer *lipgloss.Renderer

	Message lipgloss.Style // Centered announcement box
	Bar     lipgloss.Style // HUD status bar
	Dim     lipgloss.Style // Secondary HUD text
}

// NewPalette builds a palette for output written to w. The profile is forced
// rather than detected because SSH sessions are not the process's own TTY.
func NewPalette(w io.Writer, profile termenv.Profile) *Palette {
	p := &Palette{profile: profile}
	for ink, hex := range inkColors {
		if hex == "" {
			continue
		}
		c := profile.Color(hex)
		if c == nil {
			continue
		}
		p.fg[ink] = c.Sequence(false)
		p.bg[ink] = c.Sequence(true)
	}

	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	p.renderer = r
	p.Message = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorShip)).
		Foreground(lipgloss.Color(ColorShip)).
		Padding(0, 2).
		Align(lipgloss.Center)
	p.Bar = r.NewStyle().Foreground(lipgloss.Color(ColorShip)).Bold(true)
	p.Dim = r.NewStyle().Foreground(lipgloss.Color(ColorAsteroid))
	return p
}

// Ink renders s in the colour of the given ink.
func (p *Palette) Ink(ink Ink, s string) string {
	if ink >= numInks || inkColors[ink] == "" {
		return s
	}
	return p.renderer.NewStyle().Foreground(lipgloss.Color(inkColors[ink])).Render(s)
}

// cellSequence returns a complete SGR escape selecting fg and bg inks.
func (p *Palette) cellSequence(fg, bg Ink) string {
	seq := "\033[0"
	if fg < numInks && p.fg[fg] != "" {
		seq += ";" + p.fg[fg]
	}
	if bg < numInks && p.bg[bg] != "" {
		seq += ";" + p.bg[bg]
	}
	return seq + "m"
}

// FlashBackground returns SGR background parameters for hex blended over the
// game background at the given intensity (0..1). It returns "" when the
// intensity is zero or the profile has no colour.
func (p *Palette) FlashBackground(hex string, intensity float64) string {
	if intensity <= 0 || p.profile == termenv.Ascii {
		return ""
	}
	if intensity > 1 {
		intensity = 1
	}
	base, err := colorful.Hex(ColorBackground)
	if err != nil {
		return ""
	}
	tint, err := colorful.Hex(hex)
	if err != nil {
		return ""
	}
	blended := base.BlendRgb(tint, intensity).Clamped()
	c := p.profile.Color(blended.Hex())
	if c == nil {
		return ""
	}
	return c.Sequence(true)
}
