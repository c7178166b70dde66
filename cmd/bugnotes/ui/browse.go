package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bugnotes/internal/notes"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// BrowseModel is the state of the bug browser: a filterable list of the
// day's bug reports next to a viewport showing the selected report.
type BrowseModel struct {
	width    int
	height   int
	list     list.Model
	viewport viewport.Model

	// Focus state
	focusViewport bool

	bugs     []notes.Bug
	header   notes.Header
	selected *notes.Bug

	styles Styles
}

// bugItem adapts notes.Bug to list.Item
type bugItem struct {
	bug notes.Bug
}

func (i bugItem) Title() string { return i.bug.Summary }
func (i bugItem) Description() string {
	return fmt.Sprintf("[%s] %s %s", i.bug.BugNum, i.bug.Platform, i.bug.Time)
}
func (i bugItem) FilterValue() string {
	return i.bug.Summary + " " + i.bug.BugNum + " " + i.bug.Platform
}

// NewBrowseModel creates a browser over the given bug reports. The header
// supplies the username shown for records that carry none of their own.
func NewBrowseModel(bugs []notes.Bug, header notes.Header) BrowseModel {
	styles := DefaultStyles()

	vp := viewport.New(0, 0)
	vp.SetContent("Select a bug to view the report.")

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = styles.Title

	m := BrowseModel{
		list:     l,
		viewport: vp,
		header:   header,
		styles:   styles,
	}
	m.SetBugs(bugs)
	return m
}

// SetBugs replaces the listed reports.
func (m *BrowseModel) SetBugs(bugs []notes.Bug) {
	m.bugs = bugs
	items := make([]list.Item, 0, len(bugs))
	for _, b := range bugs {
		items = append(items, bugItem{bug: b})
	}
	m.list.SetItems(items)
	m.list.Title = fmt.Sprintf("Bug Reports (%d)", len(bugs))
}

// Init initializes the model.
func (m BrowseModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit

			case "tab":
				m.focusViewport = !m.focusViewport
				return m, nil

			case "c":
				// Full report text for pasting into the tracker
				if m.selected != nil {
					if err := clipboardWriteAll(notes.ComposeReport(*m.selected)); err != nil {
						cmd = m.list.NewStatusMessage(m.styles.Error.Render("Failed to copy report"))
					} else {
						cmd = m.list.NewStatusMessage(m.styles.Success.Render("Copied full report to clipboard"))
					}
					cmds = append(cmds, cmd)
				}

			case "y":
				// Short reference for pasting into chat
				if m.selected != nil {
					ref := fmt.Sprintf("[%s] %s", m.selected.BugNum, m.selected.Summary)
					if err := clipboardWriteAll(ref); err != nil {
						cmd = m.list.NewStatusMessage(m.styles.Error.Render("Failed to copy reference"))
					} else {
						cmd = m.list.NewStatusMessage(m.styles.Success.Render("Copied " + ref))
					}
					cmds = append(cmds, cmd)
				}
			}
		}
	}

	_, isKey := msg.(tea.KeyMsg)
	updateList := !isKey || (!m.focusViewport || m.list.FilterState() == list.Filtering)
	updateViewport := !isKey || (m.focusViewport && m.list.FilterState() != list.Filtering)

	if updateList {
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	if updateViewport {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	if sel := m.list.SelectedItem(); sel != nil {
		item := sel.(bugItem)
		if m.selected == nil || m.selected.ID != item.bug.ID {
			b := item.bug
			m.selected = &b
			m.viewport.SetContent(m.renderBug(b))
		}
	}

	return m, tea.Batch(cmds...)
}

func (m BrowseModel) renderBug(b notes.Bug) string {
	header := m.styles.Header.Render(b.Summary)
	info := m.styles.Info.Render(fmt.Sprintf("id: %s | %s | %s | template: %s", b.ID, b.Platform, b.Time, b.Template))

	bugNum := m.styles.Muted.Render("no bug number assigned")
	if b.BugNum != "" && b.BugNum != "null" {
		bugNum = m.styles.Success.Render("bug number: " + b.BugNum)
	}

	meta := ""
	if name := notes.DisplayUsername(m.header, b); name != "" {
		meta += "Username: " + name + "\n"
	}
	if b.Build != "" {
		meta += "Build: " + b.Build + "\n"
	}

	sepWidth := m.viewport.Width
	if sepWidth < 16 {
		sepWidth = 16
	}
	separator := m.styles.RenderDivider(sepWidth)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		info,
		bugNum,
		meta,
		separator,
		notes.ComposeReport(b),
	)
}

// View renders the page.
func (m BrowseModel) View() string {
	if len(m.bugs) == 0 {
		return m.styles.Content.Render("No bug reports in this file yet.")
	}

	// Split view: list (35%) | viewport (65%)
	totalWidth := m.width
	listPaneWidth := int(float64(totalWidth) * 0.35)
	viewPaneWidth := totalWidth - listPaneWidth

	baseStyle := m.styles.Content.
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	var listStyle, viewStyle lipgloss.Style
	if !m.focusViewport {
		listStyle = baseStyle.BorderForeground(m.styles.FocusedBorder)
		viewStyle = baseStyle.BorderForeground(m.styles.BlurredBorder)
	} else {
		listStyle = baseStyle.BorderForeground(m.styles.BlurredBorder)
		viewStyle = baseStyle.BorderForeground(m.styles.FocusedBorder)
	}

	listView := listStyle.Width(listPaneWidth - 4).Render(m.list.View())
	contentView := viewStyle.Width(viewPaneWidth - 4).Render(m.viewport.View())

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, listView, contentView)

	help := m.styles.Muted.Render(" • c: copy report • y: copy reference • tab: focus switch • /: filter • q: quit")

	return lipgloss.JoinVertical(lipgloss.Left, mainView, help)
}

// SetSize updates the layout for a new terminal size.
func (m *BrowseModel) SetSize(w, h int) {
	m.width = w
	m.height = h

	// Border(2) + Padding(2) per pane
	chromeW := 4
	chromeH := 2

	paneH := h - 3 - chromeH

	listPaneWidth := int(float64(w) * 0.35)
	viewPaneWidth := w - listPaneWidth

	m.list.SetSize(listPaneWidth-chromeW, paneH)
	m.viewport.Width = viewPaneWidth - chromeW
	m.viewport.Height = paneH
}
