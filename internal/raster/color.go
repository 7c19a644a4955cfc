package raster

// Channel bit offsets within a packed 0x00RRGGBB pixel word.
const (
	redOffset   = 16
	greenOffset = 8
	blueOffset  = 0
)

// Pack combines three 8-bit channels into one packed pixel word.
// Bit layout (msb on the left): [unused=0][red][green][blue].
// The top byte stays zero; there is no alpha channel.
func Pack(r, g, b uint8) uint32 {
	return uint32(r)<<redOffset | uint32(g)<<greenOffset | uint32(b)<<blueOffset
}

// R extracts the red channel of a packed pixel word.
func R(c uint32) uint8 { return uint8(c >> redOffset) }

// G extracts the green channel of a packed pixel word.
func G(c uint32) uint8 { return uint8(c >> greenOffset) }

// B extracts the blue channel of a packed pixel word.
func B(c uint32) uint8 { return uint8(c >> blueOffset) }
