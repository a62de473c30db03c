package vm

// Display dimensions in pixels.
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// spriteWidth is the fixed width of a sprite row in pixels.
const spriteWidth = 8

// Framebuffer is the monochrome display, stored row-major.
type Framebuffer struct {
	pixels [ScreenWidth * ScreenHeight]bool
	redraw bool // a redraw is owed to the renderer
}

func (f *Framebuffer) clear() {
	f.pixels = [ScreenWidth * ScreenHeight]bool{}
	f.redraw = true
}

// Pixel returns whether the pixel at x, y is set. Coordinates outside of the
// screen report an unset pixel.
func (f *Framebuffer) Pixel(x, y int) bool {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return false
	}
	return f.pixels[y*ScreenWidth+x]
}

// drawRow XORs one sprite row onto the screen at x, y, most significant bit
// first. Pixels crossing an edge wrap around to the opposite side. It returns
// whether a set pixel was flipped off.
func (f *Framebuffer) drawRow(x, y int, row byte) bool {
	collision := false
	offset := (y % ScreenHeight) * ScreenWidth

	for column := 0; column < spriteWidth; column++ {
		if row&(0x80>>column) == 0 {
			continue
		}

		index := offset + (x+column)%ScreenWidth
		if f.pixels[index] {
			collision = true
		}
		f.pixels[index] = !f.pixels[index]
	}
	return collision
}

// takeRedraw returns whether a redraw is owed and resets the flag.
func (f *Framebuffer) takeRedraw() bool {
	owed := f.redraw
	f.redraw = false
	return owed
}
