package sim

import (
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	got, err := ParseHexColor("#00e5ff")
	if err != nil {
		t.Fatal(err)
	}
	if want := (color.RGBA{R: 0x00, G: 0xe5, B: 0xff, A: 0xff}); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	for _, bad := range []string{"", "00ff41", "#00ff4", "#00ff4g", "#+0ff41"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Errorf("ParseHexColor(%q) should fail", bad)
		}
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	tag := Themes[0]
	for i := 0; i < len(Themes); i++ {
		tag = NextTheme(tag)
	}
	if tag != Themes[0] {
		t.Fatalf("cycling %d times ended on %q", len(Themes), tag)
	}
	if NextTheme("#123456") != Themes[0] {
		t.Fatal("unknown tag should restart the cycle")
	}
	for _, tag := range Themes {
		if _, err := ParseHexColor(tag); err != nil {
			t.Fatalf("palette entry %q: %v", tag, err)
		}
	}
}
