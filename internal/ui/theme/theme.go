// Package theme defines color themes and derived lipgloss styles.
package theme

import (
	"image/color"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/compat"
)

// DefaultName names the built-in adaptive theme.
const DefaultName = "default"

// Theme defines all colors used throughout the UI.
type Theme struct {
	Name string

	// Base colors
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color

	// Text colors
	Text      compat.CompleteAdaptiveColor
	TextMuted compat.CompleteAdaptiveColor

	// Border colors
	Border      compat.AdaptiveColor
	BorderFocus color.Color

	// Accent colors
	TableSelectedFg color.Color
	TableSelectedBg color.Color
	Error           compat.AdaptiveColor
}

var (
	text = compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#111827"), ANSI256: lipgloss.Color("0"), ANSI: lipgloss.Color("0")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#F9FAFB"), ANSI256: lipgloss.Color("15"), ANSI: lipgloss.Color("15")},
	}
	textMuted = compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#6B7280"), ANSI256: lipgloss.Color("240"), ANSI: lipgloss.Color("8")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#9CA3AF"), ANSI256: lipgloss.Color("250"), ANSI: lipgloss.Color("7")},
	}
	border = compat.AdaptiveColor{
		Light: lipgloss.Color("#D1D5DB"), // Gray-300
		Dark:  lipgloss.Color("#374151"), // Gray-700
	}
	errorColor = compat.AdaptiveColor{
		Light: lipgloss.Color("#FF0000"),
		Dark:  lipgloss.Color("#FF0000"),
	}
)

// DefaultTheme is the adaptive color scheme used by default.
// Use Open Color palette when possible to define colors: https://yeun.github.io/open-color/
var DefaultTheme = Theme{
	Name: DefaultName,
	Primary: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#1864AB"), ANSI256: lipgloss.Color("25"), ANSI: lipgloss.Color("4")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#4DABF7"), ANSI256: lipgloss.Color("75"), ANSI: lipgloss.Color("12")},
	},
	Secondary: compat.AdaptiveColor{
		Light: lipgloss.Color("#E8590C"), // Orange-8
		Dark:  lipgloss.Color("#FFA94D"), // Orange-4
	},
	Accent: compat.AdaptiveColor{
		Light: lipgloss.Color("#099268"), // Teal-8
		Dark:  lipgloss.Color("#38D9A9"), // Teal-4
	},
	Text:      text,
	TextMuted: textMuted,
	Border:    border,
	BorderFocus: compat.CompleteAdaptiveColor{
		Light: compat.CompleteColor{TrueColor: lipgloss.Color("#1864AB"), ANSI256: lipgloss.Color("25"), ANSI: lipgloss.Color("4")},
		Dark:  compat.CompleteColor{TrueColor: lipgloss.Color("#4DABF7"), ANSI256: lipgloss.Color("75"), ANSI: lipgloss.Color("12")},
	},
	TableSelectedFg: lipgloss.Color("229"),
	TableSelectedBg: lipgloss.Color("57"),
	Error:           errorColor,
}

// palette builds a theme that shares text and border colors with the default.
func palette(name, primary, secondary, accent, selectedFg string) Theme {
	t := DefaultTheme
	t.Name = name
	t.Primary = lipgloss.Color(primary)
	t.Secondary = lipgloss.Color(secondary)
	t.Accent = lipgloss.Color(accent)
	t.BorderFocus = lipgloss.Color(primary)
	t.TableSelectedFg = lipgloss.Color(selectedFg)
	t.TableSelectedBg = lipgloss.Color(primary)
	return t
}

var themes = []Theme{
	DefaultTheme,
	palette("light", "#570DF8", "#F000B8", "#37CDBE", "#FFFFFF"),
	palette("wireframe", "#B8B8B8", "#B8B8B8", "#B8B8B8", "#000000"),
	palette("acid", "#FF00F4", "#FF7400", "#CBFD03", "#FFFFFF"),
	palette("corporate", "#4B6BFB", "#7B92B2", "#67CBA0", "#FFFFFF"),
	palette("nord", "#5E81AC", "#81A1C1", "#88C0D0", "#ECEFF4"),
	palette("fantasy", "#6E0B75", "#007EBD", "#F8860D", "#FFFFFF"),
	palette("pastel", "#D1C1D7", "#F6CBD1", "#B4E9D6", "#000000"),
	palette("winter", "#047AFF", "#463AA2", "#C148AC", "#FFFFFF"),
	palette("cyberpunk", "#FF7598", "#75D1F0", "#C07EEC", "#000000"),
	palette("valentine", "#E96D7B", "#A991F7", "#88DBDD", "#FFFFFF"),
	palette("dark", "#661AE6", "#D926AA", "#1FB2A5", "#FFFFFF"),
	palette("business", "#1C4E80", "#7C909A", "#EA6947", "#FFFFFF"),
	palette("dracula", "#FF79C6", "#BD93F9", "#FFB86C", "#282A36"),
	palette("halloween", "#F28C18", "#6D3A9C", "#51A800", "#000000"),
	palette("dim", "#9FE88D", "#FF7D5C", "#C792E9", "#000000"),
	palette("sunset", "#FF865B", "#FD6F9C", "#B387FA", "#000000"),
}

// Names returns all theme names in cycling order.
func Names() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// Lookup finds a theme by case-insensitive name.
func Lookup(name string) (Theme, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Next returns the theme following name, wrapping around. Unknown names
// restart at the default theme.
func Next(name string) Theme {
	idx := slices.IndexFunc(themes, func(t Theme) bool { return t.Name == name })
	if idx < 0 {
		return DefaultTheme
	}
	return themes[(idx+1)%len(themes)]
}

// Trend holds the colors used for rating changes.
type Trend struct {
	Up   color.Color
	Down color.Color
}

var (
	trendRed   = lipgloss.Color("#E03131")
	trendGreen = lipgloss.Color("#2F9E44")
	trendBlue  = lipgloss.Color("#1971C2")
)

// TrendForLocale returns trend colors following regional conventions:
// Chinese and Japanese markets show gains in red and losses in green, Korean
// markets show losses in blue, everyone else uses green for gains.
func TrendForLocale(locale string) Trend {
	switch languageOf(locale) {
	case "zh", "ja":
		return Trend{Up: trendRed, Down: trendGreen}
	case "ko":
		return Trend{Up: trendRed, Down: trendBlue}
	default:
		return Trend{Up: trendGreen, Down: trendRed}
	}
}

// LocaleFromEnv reads the POSIX locale variables in priority order.
func LocaleFromEnv(getenv func(string) string) string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if value := getenv(key); value != "" {
			return value
		}
	}
	return ""
}

// languageOf extracts "zh" from forms like "zh_CN.UTF-8" or "zh-Hans".
func languageOf(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if idx := strings.IndexAny(locale, "_-.@"); idx >= 0 {
		locale = locale[:idx]
	}
	return locale
}

// Styles holds all lipgloss styles derived from a theme
type Styles struct {
	ThemeName string

	// Navbar
	NavBar  lipgloss.Style
	NavItem lipgloss.Style
	NavKey  lipgloss.Style
	NavQuit lipgloss.Style

	// Stack bar
	StackBar   lipgloss.Style
	StackItem  lipgloss.Style
	StackArrow lipgloss.Style

	// Content
	ViewTitle   lipgloss.Style
	ViewText    lipgloss.Style
	ViewMuted   lipgloss.Style
	MetricLabel lipgloss.Style
	MetricValue lipgloss.Style
	Link        lipgloss.Style

	// Table
	TableHeader    lipgloss.Style
	TableSelected  lipgloss.Style
	TableSeparator lipgloss.Style

	// Layout helpers
	BorderStyle   lipgloss.Style
	FocusBorder   lipgloss.Style
	FilterFocused lipgloss.Style
	FilterBlurred lipgloss.Style

	// Rating changes
	TrendUp   lipgloss.Style
	TrendDown lipgloss.Style

	// Pager
	PagerActive   lipgloss.Style
	PagerPage     lipgloss.Style
	PagerDisabled lipgloss.Style

	// Charts
	ChartAxis   lipgloss.Style
	ChartLabel  lipgloss.Style
	ChartSeries []lipgloss.Style
	ChartCN     lipgloss.Style
	ChartUS     lipgloss.Style

	// JSON
	JSONKey         lipgloss.Style
	JSONString      lipgloss.Style
	JSONNumber      lipgloss.Style
	JSONBool        lipgloss.Style
	JSONNull        lipgloss.Style
	JSONPunctuation lipgloss.Style

	// Errors
	ErrorTitle  lipgloss.Style
	ErrorBorder lipgloss.Style
}

// NewStyles creates a Styles instance from the default adaptive theme.
func NewStyles() Styles {
	return StylesFor(DefaultTheme, TrendForLocale(""))
}

// StylesFor derives styles from a theme and trend colors.
func StylesFor(t Theme, trend Trend) Styles {
	series := []color.Color{
		t.Primary,
		t.Secondary,
		t.Accent,
		lipgloss.Color("#F59F00"), // Yellow-6
		lipgloss.Color("#AE3EC9"), // Grape-6
		lipgloss.Color("#74B816"), // Lime-6
	}
	seriesStyles := make([]lipgloss.Style, len(series))
	for i, c := range series {
		seriesStyles[i] = lipgloss.NewStyle().Foreground(c)
	}

	return Styles{
		ThemeName: t.Name,

		// Navbar
		NavBar: lipgloss.NewStyle().
			Padding(0, 1),

		NavItem: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			PaddingRight(1),

		NavKey: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Border).
			Padding(0, 1),

		NavQuit: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			PaddingRight(1),

		// Stack bar
		StackBar: lipgloss.NewStyle(),

		StackItem: lipgloss.NewStyle().
			Foreground(t.TableSelectedFg).
			Background(t.Primary).
			Padding(0, 1),

		StackArrow: lipgloss.NewStyle().
			Foreground(t.Primary),

		// Content
		ViewTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		ViewText: lipgloss.NewStyle().
			Foreground(t.Text),

		ViewMuted: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		MetricLabel: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		MetricValue: lipgloss.NewStyle().
			Foreground(t.Text).
			Bold(true),

		Link: lipgloss.NewStyle().
			Foreground(t.Accent).
			Underline(true),

		// Table
		TableHeader: lipgloss.NewStyle().
			Foreground(t.Text).
			Bold(true),

		TableSelected: lipgloss.NewStyle().
			Foreground(t.TableSelectedFg).
			Background(t.TableSelectedBg),

		TableSeparator: lipgloss.NewStyle().
			Foreground(t.Border),

		// Layout helpers
		BorderStyle: lipgloss.NewStyle().
			Foreground(t.Border),

		FocusBorder: lipgloss.NewStyle().
			Foreground(t.BorderFocus),

		FilterFocused: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true),

		FilterBlurred: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		// Rating changes
		TrendUp: lipgloss.NewStyle().
			Foreground(trend.Up),

		TrendDown: lipgloss.NewStyle().
			Foreground(trend.Down),

		// Pager
		PagerActive: lipgloss.NewStyle().
			Foreground(t.TableSelectedFg).
			Background(t.Primary).
			Bold(true).
			Padding(0, 1),

		PagerPage: lipgloss.NewStyle().
			Foreground(t.Text).
			Padding(0, 1),

		PagerDisabled: lipgloss.NewStyle().
			Foreground(t.Border).
			Padding(0, 1),

		// Charts
		ChartAxis: lipgloss.NewStyle().
			Foreground(t.Border),

		ChartLabel: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		ChartSeries: seriesStyles,

		ChartCN: lipgloss.NewStyle().
			Foreground(t.Secondary),

		ChartUS: lipgloss.NewStyle().
			Foreground(t.Primary),

		// JSON
		JSONKey: lipgloss.NewStyle().
			Foreground(t.Primary),

		JSONString: lipgloss.NewStyle().
			Foreground(t.Accent),

		JSONNumber: lipgloss.NewStyle().
			Foreground(t.Secondary),

		JSONBool: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true),

		JSONNull: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			Italic(true),

		JSONPunctuation: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		// Errors
		ErrorTitle: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		ErrorBorder: lipgloss.NewStyle().
			Foreground(t.Error),
	}
}

// SeriesStyle returns the style of the i-th chart series, cycling the palette.
func (s Styles) SeriesStyle(i int) lipgloss.Style {
	if len(s.ChartSeries) == 0 {
		return lipgloss.NewStyle()
	}
	return s.ChartSeries[i%len(s.ChartSeries)]
}
