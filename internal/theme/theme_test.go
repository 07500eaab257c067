package theme

import (
	"strings"
	"testing"
)

func TestSelect(t *testing.T) {
	if th := Select(true); !th.Enabled || th.Ink != "#002663" {
		t.Errorf("unexpected themed palette: %+v", th)
	}
	if th := Select(false); th.Enabled {
		t.Error("expected the plain theme when styling is unavailable")
	}
}

func TestCSS(t *testing.T) {
	css := string(Default().CSS())
	if !strings.Contains(css, "#001A4D 0%") || !strings.Contains(css, ".kpi-value") {
		t.Errorf("themed stylesheet incomplete: %s", css)
	}
	if strings.Contains(string(Plain().CSS()), "#001A4D") {
		t.Error("plain stylesheet must not carry the palette")
	}
}

func TestRGB(t *testing.T) {
	r, g, b, err := RGB("#D4A037")
	if err != nil {
		t.Fatal(err)
	}
	if r != 0xD4 || g != 0xA0 || b != 0x37 {
		t.Errorf("RGB = %d,%d,%d", r, g, b)
	}
	if _, _, _, err := RGB("blue"); err == nil {
		t.Error("expected an error for a malformed color")
	}
}
