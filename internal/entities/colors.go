// Package entities holds the value types shared by concepts and tooltips
package entities

import (
	"strings"

	"github.com/KirkDiggler/psychics/internal/errors"
)

// Color is a chat colour code understood by the host client
type Color string

// Chat colours
const (
	ColorReset       Color = "RESET"
	ColorBlack       Color = "BLACK"
	ColorDarkBlue    Color = "DARK_BLUE"
	ColorDarkGreen   Color = "DARK_GREEN"
	ColorDarkAqua    Color = "DARK_AQUA"
	ColorDarkRed     Color = "DARK_RED"
	ColorDarkPurple  Color = "DARK_PURPLE"
	ColorGold        Color = "GOLD"
	ColorGray        Color = "GRAY"
	ColorDarkGray    Color = "DARK_GRAY"
	ColorBlue        Color = "BLUE"
	ColorGreen       Color = "GREEN"
	ColorAqua        Color = "AQUA"
	ColorRed         Color = "RED"
	ColorLightPurple Color = "LIGHT_PURPLE"
	ColorYellow      Color = "YELLOW"
	ColorWhite       Color = "WHITE"
)

var colorHex = map[Color]string{
	ColorBlack:       "#000000",
	ColorDarkBlue:    "#0000AA",
	ColorDarkGreen:   "#00AA00",
	ColorDarkAqua:    "#00AAAA",
	ColorDarkRed:     "#AA0000",
	ColorDarkPurple:  "#AA00AA",
	ColorGold:        "#FFAA00",
	ColorGray:        "#AAAAAA",
	ColorDarkGray:    "#555555",
	ColorBlue:        "#5555FF",
	ColorGreen:       "#55FF55",
	ColorAqua:        "#55FFFF",
	ColorRed:         "#FF5555",
	ColorLightPurple: "#FF55FF",
	ColorYellow:      "#FFFF55",
	ColorWhite:       "#FFFFFF",
}

// Hex returns the RGB value of the colour, or "" for RESET and unknown values
func (c Color) Hex() string {
	return colorHex[c]
}

// BarColor is the colour of the mana bar shown to the player
type BarColor string

// Bar colours
const (
	BarColorBlue   BarColor = "BLUE"
	BarColorGreen  BarColor = "GREEN"
	BarColorPink   BarColor = "PINK"
	BarColorPurple BarColor = "PURPLE"
	BarColorRed    BarColor = "RED"
	BarColorWhite  BarColor = "WHITE"
	BarColorYellow BarColor = "YELLOW"
)

// DefaultManaColor is used when a concept does not configure mana-color
const DefaultManaColor = BarColorBlue

// BarColors lists every bar colour in declaration order
func BarColors() []BarColor {
	return []BarColor{
		BarColorBlue,
		BarColorGreen,
		BarColorPink,
		BarColorPurple,
		BarColorRed,
		BarColorWhite,
		BarColorYellow,
	}
}

// ParseBarColor resolves a bar colour name, ignoring case
func ParseBarColor(name string) (BarColor, error) {
	want := strings.ToUpper(strings.TrimSpace(name))
	for _, c := range BarColors() {
		if string(c) == want {
			return c, nil
		}
	}
	return "", errors.InvalidArgumentf("unknown bar color %q", name)
}

