package spinner

// Control characters written around each glyph.
const (
	backspace = "\b"
	bell      = "\a"
)

// glyphs is the fixed animation sequence.
var glyphs = [...]rune{'-', '/', '_', '|', '\\'}

// cycle is a cursor into glyphs. Each Spinner owns its own cycle so that
// concurrently running spinners never advance each other's animation.
type cycle struct {
	idx int // index of the glyph returned by the next call to next
}

// next returns the current glyph and advances the cursor, wrapping after the
// last glyph back to the first.
func (c *cycle) next() rune {
	g := glyphs[c.idx]
	c.idx = (c.idx + 1) % len(glyphs)
	return g
}
