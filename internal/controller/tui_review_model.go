package controller

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	pickerHeight  = 16
	defaultWidth  = 80
	minPickerWide = 30
)

// reviewModel is the Bubble Tea model that picks an Action for one proposal.
type reviewModel struct {
	list     list.Model
	heading  string
	choice   Action
	chosen   bool
	quitting bool
}

func newReviewModel(p Proposal, width int) reviewModel {
	if width < minPickerWide {
		width = defaultWidth
	}

	src := actionItems()
	items := make([]list.Item, 0, len(src))

	for _, item := range src {
		items = append(items, item)
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("6")).
		BorderForeground(lipgloss.Color("6"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("14")).
		BorderForeground(lipgloss.Color("6"))

	l := list.New(items, delegate, width, pickerHeight)
	l.Title = fmt.Sprintf("%s (%d/%d)", p.Finding.FunctionName, p.Index, p.Total)
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("6")).
		Bold(true).
		Padding(0, 1)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	return reviewModel{
		list:    l,
		heading: fmt.Sprintf("%s:%d", p.Finding.FilePath, p.Line),
	}
}

func (rm reviewModel) Init() tea.Cmd {
	return nil
}

func (rm reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.list.SetWidth(msg.Width)

		return rm, nil

	case tea.KeyMsg:
		if next, cmd, handled := rm.handleKeyPress(msg); handled {
			return next, cmd
		}
	}

	var cmd tea.Cmd
	rm.list, cmd = rm.list.Update(msg)

	return rm, cmd
}

//nolint:exhaustive // Only quit keys are handled by type; the rest by name.
func (rm reviewModel) handleKeyPress(msg tea.KeyMsg) (reviewModel, tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return rm.choose(ActionQuit), tea.Quit, true
	case tea.KeyEnter:
		item, ok := rm.list.SelectedItem().(actionItem)
		if !ok {
			return rm, nil, true
		}

		return rm.choose(item.action), tea.Quit, true
	default:
	}

	for _, item := range actionItems() {
		if msg.String() == item.key {
			return rm.choose(item.action), tea.Quit, true
		}
	}

	return rm, nil, false
}

func (rm reviewModel) choose(action Action) reviewModel {
	rm.choice = action
	rm.chosen = true
	rm.quitting = true

	return rm
}

func (rm reviewModel) View() string {
	if rm.quitting {
		return ""
	}

	heading := lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Render(rm.heading)

	return heading + "\n" + rm.list.View()
}
