package render

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// ASCII brightness ramp from darkest to brightest.
const asciiRamp = " .:-=+*#%@"

var resetSeq = termenv.CSI + termenv.ResetSeq + "m"

// maxCachedSeqs bounds the escape cache; it is flushed once full.
const maxCachedSeqs = 4096

// Encoder turns a Surface into terminal text. With color it packs two pixel
// rows per terminal row using "▀" (fg = top pixel, bg = bottom pixel);
// without color each cell becomes a brightness character.
type Encoder struct {
	profile termenv.Profile
	sb      strings.Builder // reusable builder to reduce allocations
	seqs    map[uint32]string
}

// NewEncoder returns an Encoder for the given color profile.
func NewEncoder(profile termenv.Profile) *Encoder {
	return &Encoder{profile: profile, seqs: make(map[uint32]string)}
}

// Profile returns the color profile in use.
func (e *Encoder) Profile() termenv.Profile { return e.profile }

// Encode renders s as Width columns by ceil(Height/2) rows.
func (e *Encoder) Encode(s *Surface) string {
	cols, rows := s.Width, (s.Height+1)/2
	if cols <= 0 || rows <= 0 || s.fbW == 0 || s.fbH == 0 {
		return ""
	}

	e.sb.Reset()
	// Worst case ~40 bytes per cell (two truecolor escapes) plus newlines.
	e.sb.Grow(cols * rows * 40)

	if e.profile == termenv.Ascii {
		e.encodeASCII(s, cols, rows)
	} else {
		e.encodeHalfBlock(s, cols, rows)
	}
	return e.sb.String()
}

func (e *Encoder) encodeHalfBlock(s *Surface, cols, rows int) {
	const none = ^uint32(0)
	for row := 0; row < rows; row++ {
		lastFg, lastBg := none, none
		for col := 0; col < cols; col++ {
			top := s.sample(col, row*2)
			bot := uint32(0)
			if row*2+1 < s.Height {
				bot = s.sample(col, row*2+1)
			}
			if top != lastFg {
				e.sb.WriteString(e.sequence(top, false))
				lastFg = top
			}
			if bot != lastBg {
				e.sb.WriteString(e.sequence(bot, true))
				lastBg = bot
			}
			e.sb.WriteString("▀")
		}
		e.sb.WriteString(resetSeq)
		if row < rows-1 {
			e.sb.WriteByte('\n')
		}
	}
}

func (e *Encoder) encodeASCII(s *Surface, cols, rows int) {
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			lum := luminance(s.sample(col, row*2))
			if row*2+1 < s.Height {
				lum = (lum + luminance(s.sample(col, row*2+1))) / 2
			}
			e.sb.WriteByte(brightnessChar(uint8(lum)))
		}
		if row < rows-1 {
			e.sb.WriteByte('\n')
		}
	}
}

// sequence returns the escape selecting rgb as foreground or background.
func (e *Encoder) sequence(rgb uint32, bg bool) string {
	key := rgb
	if bg {
		key |= 1 << 24
	}
	if seq, ok := e.seqs[key]; ok {
		return seq
	}
	c := e.profile.Color(fmt.Sprintf("#%06x", rgb))
	seq := ""
	if c != nil {
		if body := c.Sequence(bg); body != "" {
			seq = termenv.CSI + body + "m"
		}
	}
	if len(e.seqs) >= maxCachedSeqs {
		clear(e.seqs)
	}
	e.seqs[key] = seq
	return seq
}

// sample box-filters the framebuffer pixels covering logical pixel (x, y)
// and returns them packed as 0xRRGGBB.
func (s *Surface) sample(x, y int) uint32 {
	x0 := x * s.fbW / s.Width
	x1 := max((x+1)*s.fbW/s.Width, x0+1)
	y0 := y * s.fbH / s.Height
	y1 := max((y+1)*s.fbH/s.Height, y0+1)

	var r, g, b, n int
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			pr, pg, pb := s.At(px, py)
			r += int(pr)
			g += int(pg)
			b += int(pb)
			n++
		}
	}
	return uint32(r/n)<<16 | uint32(g/n)<<8 | uint32(b/n)
}

// luminance computes perceived brightness (ITU-R BT.601).
func luminance(rgb uint32) int {
	r, g, b := int(rgb>>16&0xff), int(rgb>>8&0xff), int(rgb&0xff)
	return (299*r + 587*g + 114*b) / 1000
}

// brightnessChar maps a 0-255 luminance to an ASCII character.
func brightnessChar(lum uint8) byte {
	idx := int(lum) * (len(asciiRamp) - 1) / 255
	return asciiRamp[idx]
}
