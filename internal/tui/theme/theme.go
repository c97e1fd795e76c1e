// Package theme defines color themes for the spendwise TUI dashboard.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendwise/internal/model"
)

// Theme holds the color roles the dashboard draws with. Surfaces and text
// run from dim to bright; the status colors mark budget and score state.
type Theme struct {
	Name string

	Background, Surface, SurfaceHover, SurfaceBright lipgloss.Color
	Border, BorderAccent                             lipgloss.Color
	TextDim, TextMuted, TextPrimary                  lipgloss.Color
	Accent, AccentBright                             lipgloss.Color

	Green, GreenBright, Yellow, Orange, Red lipgloss.Color
	Blue, Cyan                              lipgloss.Color

	// Categories colors spending categories in charts and tables.
	Categories map[model.Category]lipgloss.Color
}

// CategoryColor returns the color of a spending category, or TextDim for
// categories the theme does not list.
func (t Theme) CategoryColor(c model.Category) lipgloss.Color {
	if col, ok := t.Categories[c]; ok {
		return col
	}
	return t.TextDim
}

// withCategories fills the category palette from the theme's own colors:
// food green, shopping pink, travel blue, bills orange, other muted.
func (t Theme) withCategories(shopping lipgloss.Color) Theme {
	t.Categories = map[model.Category]lipgloss.Color{
		model.CategoryFood:     t.Green,
		model.CategoryShopping: shopping,
		model.CategoryTravel:   t.Blue,
		model.CategoryBills:    t.Orange,
		model.CategoryOther:    t.TextMuted,
	}
	return t
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default: warm, paper-like dark.
var FlexokiDark = Theme{
	Name:       "flexoki-dark",
	Background: "#100F0F", Surface: "#1C1B1A", SurfaceHover: "#282726", SurfaceBright: "#343331",
	Border: "#403E3C", BorderAccent: "#3AA99F",
	TextDim: "#575653", TextMuted: "#878580", TextPrimary: "#FFFCF0",
	Accent: "#3AA99F", AccentBright: "#5BC8BE",
	Green: "#879A39", GreenBright: "#A3B859", Yellow: "#D0A215", Orange: "#DA702C", Red: "#D14D41",
	Blue: "#4385BE", Cyan: "#24837B",
}.withCategories("#CE5D97")

// CatppuccinMocha is a soft pastel dark theme.
var CatppuccinMocha = Theme{
	Name:       "catppuccin-mocha",
	Background: "#1E1E2E", Surface: "#313244", SurfaceHover: "#45475A", SurfaceBright: "#585B70",
	Border: "#585B70", BorderAccent: "#89B4FA",
	TextDim: "#6C7086", TextMuted: "#A6ADC8", TextPrimary: "#CDD6F4",
	Accent: "#89B4FA", AccentBright: "#B4D0FB",
	Green: "#A6E3A1", GreenBright: "#C6F6C1", Yellow: "#F9E2AF", Orange: "#FAB387", Red: "#F38BA8",
	Blue: "#89B4FA", Cyan: "#94E2D5",
}.withCategories("#F5C2E7")

// TokyoNight is a cool blue and purple dark theme.
var TokyoNight = Theme{
	Name:       "tokyo-night",
	Background: "#1A1B26", Surface: "#24283B", SurfaceHover: "#343A52", SurfaceBright: "#414868",
	Border: "#565F89", BorderAccent: "#7AA2F7",
	TextDim: "#565F89", TextMuted: "#A9B1D6", TextPrimary: "#C0CAF5",
	Accent: "#7AA2F7", AccentBright: "#A9C1FF",
	Green: "#9ECE6A", GreenBright: "#B9E87A", Yellow: "#E0AF68", Orange: "#FF9E64", Red: "#F7768E",
	Blue: "#7AA2F7", Cyan: "#7DCFFF",
}.withCategories("#BB9AF7")

// Terminal sticks to the 16 ANSI colors.
var Terminal = Theme{
	Name:       "terminal",
	Background: "0", Surface: "0", SurfaceHover: "8", SurfaceBright: "8",
	Border: "8", BorderAccent: "6",
	TextDim: "8", TextMuted: "7", TextPrimary: "15",
	Accent: "6", AccentBright: "14",
	Green: "2", GreenBright: "10", Yellow: "3", Orange: "3", Red: "1",
	Blue: "4", Cyan: "6",
}.withCategories("5")

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
