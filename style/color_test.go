package style_test

import (
	"encoding/json"
	"errors"
	"testing"

	"cssbag/style"
)

func TestParseColor_Hex(t *testing.T) {
	tests := []struct {
		in   string
		want style.Color
	}{
		{"#f00", style.PackedColor(0xff0000)},
		{"#ff0000", style.PackedColor(0xff0000)},
		{"#1a2b3c", style.PackedColor(0x1a2b3c)},
		{"#FFF", style.PackedColor(0xffffff)},
		{"#ff000080", style.ComponentColor(255, 0, 0, 128.0/255)},
		{"#f008", style.ComponentColor(255, 0, 0, 136.0/255)},
	}
	for _, tt := range tests {
		got, err := style.ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}

	// short and long spellings of the same color must agree
	short, _ := style.ParseColor("#f00")
	long, _ := style.ParseColor("#ff0000")
	if short != long {
		t.Errorf("#f00 (%+v) and #ff0000 (%+v) disagree", short, long)
	}

	for _, in := range []string{"#ff", "#fffff", "#gg0000", "#"} {
		if _, err := style.ParseColor(in); !errors.Is(err, style.ErrUnsupportedColorFormat) {
			t.Errorf("ParseColor(%q): expected ErrUnsupportedColorFormat, got %v", in, err)
		}
	}
}

func TestParseColor_Functions(t *testing.T) {
	got, err := style.ParseColor("rgb(255, 0, 0)")
	if err != nil {
		t.Fatalf("rgb: %v", err)
	}
	if got != style.PackedColor(0xff0000) {
		t.Errorf("rgb(255, 0, 0) = %+v, want packed 0xff0000", got)
	}

	got, err = style.ParseColor("rgba(0, 0, 255, 0.5)")
	if err != nil {
		t.Fatalf("rgba: %v", err)
	}
	if got != style.ComponentColor(0, 0, 255, 0.5) {
		t.Errorf("rgba(0, 0, 255, 0.5) = %+v", got)
	}

	// component and alpha ranges are strict, never clamped
	for _, in := range []string{"rgb(300, 0, 0)", "rgb(-1, 0, 0)", "rgba(0, 0, 0, 2)", "rgba(0, 0, 0, -0.1)"} {
		if _, err := style.ParseColor(in); !errors.Is(err, style.ErrInvalidColorComponent) {
			t.Errorf("ParseColor(%q): expected ErrInvalidColorComponent, got %v", in, err)
		}
	}
	if _, err := style.ParseColor("rgb(0, 0)"); !errors.Is(err, style.ErrUnsupportedColorFormat) {
		t.Errorf("two components: expected ErrUnsupportedColorFormat, got %v", err)
	}
}

func TestParseColor_Named(t *testing.T) {
	got, err := style.ParseColor("red")
	if err != nil {
		t.Fatalf("red: %v", err)
	}
	if got != style.PackedColor(0xff0000) {
		t.Errorf("red = %+v, want packed 0xff0000", got)
	}

	got, err = style.ParseColor("CornflowerBlue")
	if err != nil {
		t.Fatalf("cornflowerblue: %v", err)
	}
	if got != style.PackedColor(0x6495ed) {
		t.Errorf("cornflowerblue = %+v, want packed 0x6495ed", got)
	}

	got, err = style.ParseColor("transparent")
	if err != nil {
		t.Fatalf("transparent: %v", err)
	}
	if got != style.ComponentColor(0, 0, 0, 0) {
		t.Errorf("transparent = %+v, want zero components", got)
	}

	if _, err := style.ParseColor("notacolor"); !errors.Is(err, style.ErrUnsupportedColorFormat) {
		t.Errorf("expected ErrUnsupportedColorFormat, got %v", err)
	}
}

func TestColor_Components(t *testing.T) {
	r, g, b, a := style.PackedColor(0x1a2b3c).Components()
	if r != 0x1a || g != 0x2b || b != 0x3c || a != 1 {
		t.Errorf("packed components = %d %d %d %v", r, g, b, a)
	}
}

func TestColor_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(style.PackedColor(0xff0000))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "16711680" {
		t.Errorf("packed marshal = %s, want 16711680", b)
	}

	b, err = json.Marshal(style.ComponentColor(255, 0, 0, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "[255,0,0,0.5]" {
		t.Errorf("components marshal = %s, want [255,0,0,0.5]", b)
	}
}
