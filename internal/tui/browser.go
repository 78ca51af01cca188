// Package tui implements the interactive conflict browser `pcsmerge merge
// --browse` launches: a scrollable list of findings on the left and the
// detail of whichever one is selected on the right. It is a read-only
// viewer, not an apply/resolve workflow — there is nothing here to accept
// or reject, only conflicts the interpreter already decided it could not
// resolve on its own. Built on the teacher's own stack, bubbletea, bubbles,
// and lipgloss, adapting the list+delegate shape the teacher used for its
// unmerged-file picker to a list of findings instead of files.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spork3dm/pcsmerge/internal/run"
)

// Browse starts the conflict browser over a completed run and blocks until
// the user quits.
func Browse(summary run.Summary) error {
	m := newModel(summary)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type findingItem struct {
	index   int
	finding run.Finding
}

func (i findingItem) Title() string {
	return fmt.Sprintf("%d. %s", i.index+1, i.finding.Kind)
}

func (i findingItem) Description() string {
	return fmt.Sprintf("role=%s  %s", i.finding.Role, truncate(i.finding.Detail, 72))
}

func (i findingItem) FilterValue() string {
	return string(i.finding.Role) + " " + i.finding.Kind + " " + i.finding.Detail
}

type findingDelegate struct{}

func (findingDelegate) Height() int                        { return 2 }
func (findingDelegate) Spacing() int                        { return 1 }
func (findingDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (findingDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	item, ok := li.(findingItem)
	if !ok {
		return
	}

	title := styleForKind(item.finding.Kind).Render(item.Title())
	desc := dimStyle.Render(item.Description())

	if index == m.Index() {
		title = "> " + title
	} else {
		title = "  " + title
	}
	fmt.Fprintf(w, "%s\n  %s", title, desc)
}

var quitKeys = key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"))

type model struct {
	summary run.Summary
	list    list.Model
	width   int
	height  int
}

func newModel(summary run.Summary) model {
	items := make([]list.Item, len(summary.Findings))
	for i, f := range summary.Findings {
		items[i] = findingItem{index: i, finding: f}
	}

	l := list.New(items, findingDelegate{}, 0, 0)
	l.Title = fmt.Sprintf("run %s — %d finding(s)", summary.RunID, len(summary.Findings))
	l.Styles.Title = headerStyle
	l.SetShowHelp(false)

	return model{summary: summary, list: l}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		listWidth := m.width / 2
		m.list.SetSize(listWidth, m.height-4)
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, quitKeys) {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if len(m.summary.Findings) == 0 {
		return titleStyle.Render(fmt.Sprintf("run %s", m.summary.RunID)) + "\n\n" +
			dimStyle.Render("no conflicts found") + "\n\n" +
			footerStyle.Render("press q to quit")
	}

	listPane := selectedPane.Render(m.list.View())
	detailPane := paneStyle.Width(m.width - lipgloss.Width(listPane) - 4).Render(m.renderDetail())

	body := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
	return body + "\n" + footerStyle.Render("↑/↓ select · / filter · q quit")
}

func (m model) renderDetail() string {
	item, ok := m.list.SelectedItem().(findingItem)
	if !ok {
		return dimStyle.Render("no finding selected")
	}
	f := item.finding

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", styleForKind(f.Kind).Render(f.Kind))
	fmt.Fprintf(&b, "role:   %s\n", f.Role)
	fmt.Fprintf(&b, "detail: %s\n", f.Detail)

	if f.Kind == "COMMENT_CONFLICT" {
		fmt.Fprintf(&b, "\nours:\n%s\n", f.Ours)
		fmt.Fprintf(&b, "\nbase:\n%s\n", f.Base)
		fmt.Fprintf(&b, "\ntheirs:\n%s\n", f.Theirs)
	}

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-len("…")] + "…"
}
