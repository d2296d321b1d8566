package game

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/tomz197/shadestep/internal/config"
	"github.com/tomz197/shadestep/internal/draw"
	"github.com/tomz197/shadestep/internal/object"
	"github.com/tomz197/shadestep/internal/power"
)

// Ship outline, in world units.
const (
	shipNose     = 2.4
	shipWing     = 1.7
	shipWingBend = 2.5 // Radians from the nose to each wing tip
	finBlinkHz   = 8.0
	finWarnAfter = 0.4 // Seconds left on a power before its fin blinks
)

var powerKeys = map[power.Kind]string{
	power.Shade:  "Q",
	power.Sol:    "E",
	power.Charge: "SPACE",
}

// Overlay is session state drawn on top of the match.
type Overlay struct {
	Inactive   time.Duration // Idle time once the warning is due, else 0
	ShutdownIn float64       // Seconds until disconnect, 0 when not shutting down
	LevelError string        // Last hot reload failure
}

// Renderer draws matches onto a terminal.
type Renderer struct {
	w        io.Writer
	canvas   *draw.Canvas
	text     *draw.TextLayer
	palette  *draw.Palette
	view     object.Screen
	termSize draw.TermSizeFunc
}

// NewRenderer creates a renderer writing to w. A nil termSize reads the
// process's own terminal.
func NewRenderer(w io.Writer, termSize draw.TermSizeFunc, profile termenv.Profile) *Renderer {
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}
	termWidth, termHeight, _ := termSize()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	palette := draw.NewPalette(w, profile)
	canvas.SetPalette(palette)

	return &Renderer{
		w:        w,
		canvas:   canvas,
		text:     draw.NewTextLayer(w, offsetCol, offsetRow, renderWidth, renderHeight),
		palette:  palette,
		view:     object.NewScreen(config.ViewWidth, config.ViewHeight),
		termSize: termSize,
	}
}

// Resize follows terminal size changes, clamping to the max render
// resolution.
func (r *Renderer) Resize() {
	termWidth, termHeight, err := r.termSize()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	r.canvas.Resize(renderWidth, renderHeight)
	r.canvas.SetOffset(offsetCol, offsetRow)
	r.text.SetArea(offsetCol, offsetRow, renderWidth, renderHeight)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > config.MaxTermWidth {
		renderWidth = config.MaxTermWidth
	}
	if renderHeight > config.MaxTermHeight {
		renderHeight = config.MaxTermHeight
	}
	if renderWidth < 1 {
		renderWidth = 1
	}
	if renderHeight < 1 {
		renderHeight = 1
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	if offsetCol < 0 {
		offsetCol = 0
	}
	if offsetRow < 0 {
		offsetRow = 0
	}
	return
}

// Draw renders one frame of m with the session overlay.
func (r *Renderer) Draw(m *Match, ov Overlay) error {
	flash := m.Flash()
	draw.ClearScreenColor(r.text, r.palette.FlashBackground(flash.Color(), flash.Intensity()))
	r.canvas.Clear()

	ctx := object.DrawContext{
		Canvas:  r.canvas,
		Writer:  r.text,
		Camera:  m.Camera().Camera,
		View:    r.view,
		Palette: r.palette,
	}
	if err := m.World().Draw(ctx); err != nil {
		return err
	}
	r.drawShip(ctx, m)

	r.canvas.Render(r.text)
	r.canvas.RenderBorder(r.text)

	middle := r.text.Height() / 2
	switch {
	case ov.ShutdownIn > 0:
		r.drawShutdownScreen(middle, ov.ShutdownIn)
	case ov.Inactive > 0:
		r.drawInactivityScreen(middle, ov.Inactive)
	default:
		r.drawHUD(m)
		r.drawMessage(m.Text().Value())
	}
	if ov.LevelError != "" {
		r.text.WriteAt(2, r.text.Height()-1, r.palette.Ink(draw.InkHazard, ov.LevelError))
	}

	if m.Audio().TakeBell() {
		r.text.Bell()
	}
	return r.text.Flush()
}

// drawShip draws the hull as a triangle and tints a fin for each obtained
// power. A fin blinks while its power is about to run out. Once the ship has
// died or won only its particle burst remains on screen.
func (r *Renderer) drawShip(ctx object.DrawContext, m *Match) {
	s := m.Ship()
	if !s.Active() {
		return
	}
	wx, wy := m.Body().Position()
	x, y, ok := object.WorldToScreen(wx, wy, ctx.Camera, ctx.View, shipNose*2)
	if !ok {
		return
	}
	angle := m.Body().Angle()

	hull := ctx.Canvas.BorrowPoints(3)
	hull[0] = draw.Point{X: x + math.Cos(angle)*shipNose, Y: y + math.Sin(angle)*shipNose}
	hull[1] = draw.Point{X: x + math.Cos(angle+shipWingBend)*shipWing, Y: y + math.Sin(angle+shipWingBend)*shipWing}
	hull[2] = draw.Point{X: x + math.Cos(angle-shipWingBend)*shipWing, Y: y + math.Sin(angle-shipWingBend)*shipWing}

	if s.Empowered(power.Sol) {
		ctx.Canvas.SetPen(draw.InkSol)
	} else {
		ctx.Canvas.SetPen(draw.InkShip)
	}
	// A phasing ship is drawn hollow.
	ctx.Canvas.DrawPolygon(hull, !s.Empowered(power.Shade))

	fins := [...]struct {
		kind  power.Kind
		point draw.Point
	}{
		{power.Shade, hull[1]},
		{power.Sol, hull[2]},
		{power.Charge, hull[0]},
	}
	for _, fin := range fins {
		if !m.fx.Fin(fin.kind) {
			continue
		}
		if until, ok := s.ExpiresAt(fin.kind); ok {
			left := (until - m.Now()).Seconds()
			if left < finWarnAfter && !object.ShouldRenderBlink(left, finBlinkHz) {
				continue
			}
		}
		ctx.Canvas.SetPen(object.PowerInk(fin.kind))
		ctx.Canvas.FillRect(fin.point.X-0.5, fin.point.Y-0.5, 1, 1, false)
	}
}

// drawHUD draws the power bar on the top row and the level status on the
// bottom row.
func (r *Renderer) drawHUD(m *Match) {
	s := m.Ship()
	parts := make([]string, 0, len(power.Kinds)+1)
	for _, k := range power.Kinds {
		label := fmt.Sprintf("%s [%s]", k.Label(), powerKeys[k])
		switch {
		case !s.Obtained(k):
			parts = append(parts, r.palette.Dim.Render(strings.Repeat("·", len(label))))
		case s.Empowered(k):
			left := 0.0
			if until, ok := s.ExpiresAt(k); ok {
				left = (until - m.Now()).Seconds()
			}
			parts = append(parts, r.palette.Ink(object.PowerInk(k), fmt.Sprintf("%s %4.1fs", label, left)))
		default:
			parts = append(parts, r.palette.Ink(object.PowerInk(k), label))
		}
	}
	if m.Audio().Engine() {
		parts = append(parts, r.palette.Bar.Render("ENGINE"))
	}
	r.text.WriteAt(2, 1, strings.Join(parts, "  "))

	lvl := m.Level()
	x, y := m.Body().Position()
	status := fmt.Sprintf("%s  X:%-5.0f Y:%-5.0f  %-7s", lvl.Name, x, y, s.Status())
	bottom := r.text.Height()
	r.text.WriteAt(2, bottom, r.palette.Dim.Render(status))
	r.text.WriteRight(bottom, len(status)+5, r.palette.Dim.Render("BACKSPACE restart  ESC quit"))
}

// drawMessage centres the message box on the screen.
func (r *Renderer) drawMessage(text string) {
	if text == "" {
		return
	}
	r.text.WriteBox(r.palette.Message.Render(text))
}

// drawInactivityScreen draws the inactivity warning screen.
func (r *Renderer) drawInactivityScreen(middle int, idle time.Duration) {
	r.text.WriteCentered(middle-2, "INACTIVITY WARNING")
	r.text.WriteCentered(middle, fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-idle.Seconds()),
	))
	r.text.WriteCentered(middle+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (r *Renderer) drawShutdownScreen(middle int, remaining float64) {
	r.text.WriteCentered(middle-3, "SERVER SHUTTING DOWN")
	r.text.WriteCentered(middle-1, "The server is restarting for maintenance.")
	r.text.WriteCentered(middle, "Please reconnect in a moment.")
	r.text.WriteCentered(middle+2, fmt.Sprintf("Disconnecting in %d seconds...", int(remaining)+1))
	r.text.WriteCentered(middle+4, "Press ESC to disconnect now")
}

// Close restores the cursor and clears the screen.
func (r *Renderer) Close() {
	draw.ClearScreen(r.w)
	draw.ShowCursor(r.w)
}
