package types

import (
	"fmt"
)

// Glyph - символ и цвет клетки, упакованные в uint32:
//
//	[0:8]  - ASCII-символ, маска 0xFF
//	[8:32] - RGB-цвет 0xRRGGBB, маска 0xFFFFFF
type Glyph uint32

const (
	bitsChar  = 8
	bitsColor = 24

	shiftColor = bitsChar

	maskChar  = (1 << bitsChar) - 1  // 0xFF
	maskColor = (1 << bitsColor) - 1 // 0xFFFFFF
)

// MakeGlyph собирает глиф. Лишние старшие биты цвета отбрасываются.
//
//	MakeGlyph(0xFFA500, 'A') // 0xFFA50041
func MakeGlyph(colorRGB uint32, char byte) Glyph {
	return Glyph((colorRGB&maskColor)<<shiftColor | (uint32(char) & maskChar))
}

// Color - цвет в формате 0xRRGGBB.
func (g Glyph) Color() uint32 {
	return uint32(g>>shiftColor) & maskColor
}

func (g Glyph) Char() byte {
	return byte(g & maskChar)
}

// Symbol - символ строкой для клиента.
func (g Glyph) Symbol() string {
	return string(rune(g.Char()))
}

// WithColor - тот же символ другим цветом.
func (g Glyph) WithColor(colorRGB uint32) Glyph {
	return MakeGlyph(colorRGB, g.Char())
}

// String реализует fmt.Stringer: "Glyph{char='A', color=#FFA500}".
// Непечатаемые символы выводятся в hex.
func (g Glyph) String() string {
	char := g.Char()
	charStr := string([]byte{char})
	if char < 32 || char > 126 {
		charStr = fmt.Sprintf("\\x%02X", char)
	}
	return fmt.Sprintf("Glyph{char='%s', color=%s}", charStr, g.HexColor())
}

// HexColor - цвет для клиента, например "#00FF00".
func (g Glyph) HexColor() string {
	return fmt.Sprintf("#%06X", g.Color())
}
