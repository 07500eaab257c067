// Package theme holds the presentation palette handed to the renderers.
// A Theme is a plain value; nothing here is mutated after startup.
package theme

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
)

// Theme describes the dashboard styling.
type Theme struct {
	Enabled bool

	Navy  string // hero gradient start
	Blue  string // primary bars
	Ink   string // headings and KPI values
	Gold  string // secondary bars
	Badge string // KPI badge background
	Card  string // card background
	Muted string // secondary text
}

// Default returns the airline palette.
func Default() Theme {
	return Theme{
		Enabled: true,
		Navy:    "#001A4D",
		Blue:    "#003A80",
		Ink:     "#002663",
		Gold:    "#D4A037",
		Badge:   "#FFF3B0",
		Card:    "#FFFFFF",
		Muted:   "#555555",
	}
}

// Plain returns a monochrome theme for environments without styling support.
func Plain() Theme {
	return Theme{
		Navy:  "#000000",
		Blue:  "#333333",
		Ink:   "#000000",
		Gold:  "#777777",
		Badge: "#EEEEEE",
		Card:  "#FFFFFF",
		Muted: "#555555",
	}
}

// Select resolves the styling capability decided at startup.
func Select(enabled bool) Theme {
	if enabled {
		return Default()
	}
	return Plain()
}

// CSS renders the stylesheet for the web pages.
func (t Theme) CSS() template.CSS {
	if !t.Enabled {
		return template.CSS(`body{font-family:sans-serif;margin:2rem}.kpi{border:1px solid #ccc;padding:8px;margin:4px;display:inline-block}`)
	}

	var sb strings.Builder
	sb.WriteString(`body{font-family:"Helvetica Neue",Arial,sans-serif;background:#F5F7FA;margin:0;padding:2rem;color:#222}`)
	fmt.Fprintf(&sb, `h1,h2,h3{color:%s}`, t.Ink)
	fmt.Fprintf(&sb, `.hero{background:linear-gradient(135deg,%s 0%%,%s 100%%);color:#fff;padding:2.5rem;border-radius:20px;margin-bottom:2rem}`, t.Navy, t.Blue)
	sb.WriteString(`.hero h1{color:#fff;margin:0}`)
	fmt.Fprintf(&sb, `.card{display:block;background:%s;border-radius:16px;padding:16px;margin:8px 0;box-shadow:0 2px 10px rgba(0,0,0,0.08);text-decoration:none}`, t.Card)
	fmt.Fprintf(&sb, `.card-title{color:%s;font-weight:700;font-size:1.2rem}.card-desc{color:%s}`, t.Ink, t.Muted)
	sb.WriteString(`.kpis{display:grid;grid-template-columns:repeat(4,1fr);gap:12px}`)
	fmt.Fprintf(&sb, `.kpi{background:%s;border-radius:16px;padding:16px;box-shadow:0 2px 10px rgba(0,0,0,0.08)}`, t.Card)
	fmt.Fprintf(&sb, `.kpi-title{color:%s;font-size:.9rem;font-weight:600}.kpi-value{color:%s;font-size:2.2rem;font-weight:800}`, t.Muted, t.Ink)
	fmt.Fprintf(&sb, `.badge{display:inline-block;margin-top:8px;padding:4px 10px;border-radius:999px;background:%s;color:%s;font-size:.75rem;font-weight:700}`, t.Badge, t.Ink)
	fmt.Fprintf(&sb, `.bar{background:%s;height:12px}.bar.alt{background:%s}`, t.Blue, t.Gold)
	fmt.Fprintf(&sb, `.error{background:#FDECEA;color:#611A15;padding:12px;border-radius:8px}a.back{color:%s;font-weight:600;text-decoration:none}`, t.Ink)
	return template.CSS(sb.String())
}

// RGB splits a #RRGGBB color into its components.
func RGB(hex string) (r, g, b int, err error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF), nil
}
