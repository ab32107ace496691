package types

import (
	"testing"
)

func TestMakeGlyph(t *testing.T) {
	tests := []struct {
		name  string
		color uint32
		char  byte
		want  Glyph
	}{
		{"orange A", 0xFFA500, 'A', Glyph(0xFFA50041)},
		{"black space", 0x000000, ' ', Glyph(0x00000020)},
		{"color truncation", 0x12345678, 'x', Glyph(0x34567878)},
		{"max char", 0x404040, 0xFF, Glyph(0x404040FF)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MakeGlyph(tt.color, tt.char); got != tt.want {
				t.Errorf("MakeGlyph() = 0x%08X, want 0x%08X", uint32(got), uint32(tt.want))
			}
		})
	}
}

func TestGlyph_Unpack(t *testing.T) {
	g := MakeGlyph(0x3FBF3F, 'o')
	if g.Char() != 'o' {
		t.Errorf("Char() = %q, want 'o'", g.Char())
	}
	if g.Color() != 0x3FBF3F {
		t.Errorf("Color() = 0x%06X, want 0x3FBF3F", g.Color())
	}
	if g.Symbol() != "o" {
		t.Errorf("Symbol() = %q, want \"o\"", g.Symbol())
	}
	if g.HexColor() != "#3FBF3F" {
		t.Errorf("HexColor() = %q, want #3FBF3F", g.HexColor())
	}
}

func TestGlyph_WithColor(t *testing.T) {
	g := MakeGlyph(0xFFFFFF, '@').WithColor(0xBF0000)
	if g.Char() != '@' || g.Color() != 0xBF0000 {
		t.Errorf("WithColor() = %v", g)
	}
}

func TestGlyph_String(t *testing.T) {
	tests := []struct {
		name string
		g    Glyph
		want string
	}{
		{"printable", MakeGlyph(0xFFA500, 'A'), "Glyph{char='A', color=#FFA500}"},
		{"newline", MakeGlyph(0xFFFFFF, '\n'), "Glyph{char='\\x0A', color=#FFFFFF}"},
		{"zero", Glyph(0), "Glyph{char='\\x00', color=#000000}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
