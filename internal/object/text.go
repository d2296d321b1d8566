package object

// Label is a static line of text pinned to a world point, such as a level
// title or a hint painted next to a block.
type Label struct {
	X, Y  float64 // World position of the first character
	Value string
}

func (l *Label) Tag() Tag { return TagLabel }

// Update is a no-op for static text.
func (l *Label) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}

// Draw writes the label on the text overlay when it is in view.
func (l *Label) Draw(ctx DrawContext) error {
	if l.Value == "" || ctx.Writer == nil {
		return nil
	}
	x, y, ok := WorldToScreen(l.X, l.Y, ctx.Camera, ctx.View, 0)
	if !ok {
		return nil
	}
	col, row := ctx.Canvas.LogicalToTerminal(x, y)
	if col < 1 {
		col = 1
	}
	if row < 1 {
		row = 1
	}
	value := l.Value
	if ctx.Palette != nil {
		value = ctx.Palette.Dim.Render(value)
	}
	ctx.Writer.WriteAt(col, row, value)
	return nil
}
