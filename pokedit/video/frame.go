package video

// Primitive is a single drawing operation against the device display.
type Primitive interface {
	draw(fb *FrameBuffer)
}

// Fill paints the whole display a single color.
type Fill struct {
	Color Color
}

// Rect paints an axis-aligned filled rectangle, clipped to the display.
type Rect struct {
	X, Y  int
	W, H  int
	Color Color
}

// Text paints a string using the built-in glyph font. X,Y is the top-left
// corner of the first glyph; if Center is set, X is the horizontal midpoint
// of the rendered string instead.
type Text struct {
	X, Y    int
	Color   Color
	Content string
	Center  bool
}

// Frame is one render pass's output: an ordered list of primitives,
// back-to-front. A Frame is built once and never mutated after that.
type Frame struct {
	prims []Primitive
}

func NewFrame() *Frame {
	return &Frame{}
}

// Push appends a primitive. Later primitives paint over earlier ones.
func (f *Frame) Push(p Primitive) {
	f.prims = append(f.prims, p)
}

// Len returns the number of primitives in the frame.
func (f *Frame) Len() int {
	return len(f.prims)
}

// Draw composites the frame onto fb in push order, so naive painting yields
// correct layering.
func (f *Frame) Draw(fb *FrameBuffer) {
	for _, p := range f.prims {
		p.draw(fb)
	}
}

func (p Fill) draw(fb *FrameBuffer) {
	for i := range fb.buffer {
		fb.buffer[i] = uint32(p.Color)
	}
}

func (p Rect) draw(fb *FrameBuffer) {
	for y := p.Y; y < p.Y+p.H; y++ {
		for x := p.X; x < p.X+p.W; x++ {
			fb.SetPixel(x, y, p.Color)
		}
	}
}

func (p Text) draw(fb *FrameBuffer) {
	x := p.X
	if p.Center {
		x -= len(p.Content) * GlyphWidth / 2
	}
	for _, r := range p.Content {
		drawGlyph(fb, x, p.Y, r, p.Color)
		x += GlyphWidth
	}
}
