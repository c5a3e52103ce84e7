package video

// Fixed dimensions of the simulated device display, in pixels.
const (
	FramebufferWidth  = 240
	FramebufferHeight = 160
)

// Color is a 32 bit RGBA pixel value (0xRRGGBBAA).
type Color uint32

const (
	White     Color = 0xFFFFFFFF
	LightGrey Color = 0x989898FF
	DarkGrey  Color = 0x4C4C4CFF
	Black     Color = 0x000000FF

	// UI accents
	TitleRed  Color = 0xB03030FF
	Highlight Color = 0xD8D8F0FF
)

// RGBA splits a color into its components.
func (c Color) RGBA() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// FrameBuffer is a fixed size pixel buffer in RGBA format.
type FrameBuffer struct {
	width  int
	height int
	buffer []uint32
}

// NewFrameBuffer creates a frame buffer with the device display size.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{
		width:  FramebufferWidth,
		height: FramebufferHeight,
		buffer: make([]uint32, FramebufferWidth*FramebufferHeight),
	}
}

func (fb *FrameBuffer) Width() int {
	return fb.width
}

func (fb *FrameBuffer) Height() int {
	return fb.height
}

func (fb *FrameBuffer) GetPixel(x, y int) uint32 {
	return fb.buffer[y*fb.width+x]
}

func (fb *FrameBuffer) SetPixel(x, y int, color Color) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	fb.buffer[y*fb.width+x] = uint32(color)
}

// ToSlice exposes the raw pixel values, row major.
func (fb *FrameBuffer) ToSlice() []uint32 {
	return fb.buffer
}
