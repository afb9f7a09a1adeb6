package theme

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

type RGB [3]uint8

type Palette struct {
	Name   string
	Colors []RGB
}

// DefaultPalette is a plasma ramp, used when no palette file is configured
func DefaultPalette() *Palette {
	return &Palette{
		Name: "plasma",
		Colors: []RGB{
			{13, 8, 135},
			{84, 2, 163},
			{139, 10, 165},
			{185, 50, 137},
			{219, 92, 104},
			{244, 136, 73},
			{254, 188, 43},
			{240, 249, 33},
		},
	}
}

// LoadGPL reads a GIMP palette file
func LoadGPL(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := ParseGPL(f)
	if err != nil {
		return nil, fmt.Errorf("palette %s: %w", path, err)
	}
	return p, nil
}

// ParseGPL parses GIMP palette text. Rows are "R G B [name]"; the magic
// line, Name/Columns headers and # comments are skipped.
func ParseGPL(r io.Reader) (*Palette, error) {
	p := &Palette{}
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "", strings.HasPrefix(line, "#"), n == 1 && line == "GIMP Palette":
			continue
		case strings.HasPrefix(line, "Name:"):
			p.Name = strings.TrimSpace(line[len("Name:"):])
			continue
		case strings.HasPrefix(line, "Columns:"):
			continue
		}

		c, err := parseRow(strings.Fields(line))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		p.Colors = append(p.Colors, c)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(p.Colors) == 0 {
		return nil, errors.New("no colors found")
	}
	return p, nil
}

func parseRow(fields []string) (RGB, error) {
	var c RGB
	if len(fields) < 3 {
		return c, fmt.Errorf("want R G B, got %q", strings.Join(fields, " "))
	}
	for i := range c {
		v, err := strconv.ParseUint(fields[i], 10, 8)
		if err != nil {
			return c, fmt.Errorf("channel %q: want 0-255", fields[i])
		}
		c[i] = uint8(v)
	}
	return c, nil
}

// Lookup blends the two palette entries around norm (0 to 1)
func (p *Palette) Lookup(norm float64) RGB {
	if norm <= 0 || len(p.Colors) == 1 {
		return p.Colors[0]
	}
	if norm >= 1 {
		return p.Colors[len(p.Colors)-1]
	}

	pos := norm * float64(len(p.Colors)-1)
	i := int(pos)
	blended := p.Colors[i].toColorful().BlendRgb(p.Colors[i+1].toColorful(), pos-float64(i))
	r, g, b := blended.Clamped().RGB255()
	return RGB{r, g, b}
}

func (c RGB) toColorful() colorful.Color {
	return colorful.Color{R: float64(c[0]) / 255, G: float64(c[1]) / 255, B: float64(c[2]) / 255}
}

// Hex formats the color as #rrggbb
func (c RGB) Hex() string {
	return c.toColorful().Hex()
}
