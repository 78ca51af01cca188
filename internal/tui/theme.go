package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the handful of colors the conflict browser actually paints
// with. Trimmed down from the teacher's much larger apply/resolve theme,
// which also covered diff hunk highlighting and resolved/unresolved status
// markers this tool has no use for — there is nothing here to apply or
// resolve, only conflicts to browse.
type Theme struct {
	TitleFg        string
	PaneBorder     string
	SelectedBorder string
	HeaderBg       string
	HeaderFg       string
	FooterFg       string

	StructuralFg string
	ContentFg    string
	LocalMapFg   string
	CommentFg    string

	DimFg string
}

func defaultTheme() Theme {
	return Theme{
		TitleFg:        "170",
		PaneBorder:     "63",
		SelectedBorder: "205",
		HeaderBg:       "62",
		HeaderFg:       "230",
		FooterFg:       "243",
		StructuralFg:   "196",
		ContentFg:      "208",
		LocalMapFg:     "33",
		CommentFg:      "105",
		DimFg:          "244",
	}
}

var (
	titleStyle   lipgloss.Style
	paneStyle    lipgloss.Style
	selectedPane lipgloss.Style
	headerStyle  lipgloss.Style
	footerStyle  lipgloss.Style
	dimStyle     lipgloss.Style
	kindStyles   map[string]lipgloss.Style
)

func init() {
	applyTheme(defaultTheme())
}

func applyTheme(theme Theme) {
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.TitleFg)).Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.PaneBorder)).
		Padding(0, 1)

	selectedPane = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.SelectedBorder)).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Background(lipgloss.Color(theme.HeaderBg)).
		Foreground(lipgloss.Color(theme.HeaderFg)).
		Padding(0, 2)

	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.FooterFg)).Padding(0, 2)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.DimFg))

	kindStyles = map[string]lipgloss.Style{
		"STRUCTURAL_CONFLICT": lipgloss.NewStyle().Foreground(lipgloss.Color(theme.StructuralFg)).Bold(true),
		"CONTENT_CONFLICT":    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ContentFg)).Bold(true),
		"LOCAL_CONFLICT_MAP":  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.LocalMapFg)).Bold(true),
		"COMMENT_CONFLICT":    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.CommentFg)).Bold(true),
	}
}

func styleForKind(kind string) lipgloss.Style {
	if s, ok := kindStyles[kind]; ok {
		return s
	}
	return dimStyle
}
