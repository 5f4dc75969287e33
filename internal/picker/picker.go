// Package picker is the interactive selector shown after discovery: the user
// marks which postings proceed to the analysis step.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mzaleski/jobscout/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(1, 0, 1, 2)

	itemStyle = lipgloss.NewStyle().
			Padding(0, 0, 0, 4)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			Padding(0, 0, 0, 2)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	seenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	ghostStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)
)

type pickerModel struct {
	results  []model.DiscoveryResult
	cursor   int
	selected map[int]bool
	list     viewport.Model
	ready    bool
	done     bool // false after quit without confirming
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Title (3 lines with padding) + hint (2 lines) around the list.
		height := max(msg.Height-5, 3)
		if !m.ready {
			m.list = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.list.Width = msg.Width
			m.list.Height = height
		}
		m.list.SetContent(m.renderItems())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.done = false
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
		case " ":
			m.selected[m.cursor] = !m.selected[m.cursor]
		case "a":
			count := 0
			for _, v := range m.selected {
				if v {
					count++
				}
			}
			all := count < len(m.results)
			for i := range m.results {
				if all {
					m.selected[i] = true
				} else {
					delete(m.selected, i)
				}
			}
		case "enter":
			m.done = true
			return m, tea.Quit
		default:
			// Forward pgup/pgdn/home/end to the viewport.
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}

		m.list.SetContent(m.renderItems())
		m.ensureCursorVisible()
		return m, nil
	}
	return m, nil
}

func (m *pickerModel) ensureCursorVisible() {
	if m.cursor < m.list.YOffset {
		m.list.SetYOffset(m.cursor)
	} else if m.cursor >= m.list.YOffset+m.list.Height {
		m.list.SetYOffset(m.cursor - m.list.Height + 1)
	}
}

func (m pickerModel) renderItems() string {
	var b strings.Builder
	for i, r := range m.results {
		mark := "[ ]"
		if m.selected[i] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, itemLabel(r))
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render(line))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m pickerModel) View() string {
	s := titleStyle.Render(fmt.Sprintf("Discovery — %d postings, select for analysis", len(m.results)))
	s += "\n"

	if m.ready {
		s += m.list.View() + "\n"
	} else {
		s += m.renderItems()
	}

	s += hintStyle.Render("↑/↓/j/k navigate  space toggle  a all  enter confirm  q abort")
	return s
}

func itemLabel(r model.DiscoveryResult) string {
	title := r.Title
	if r.Company != "" && !strings.Contains(title, r.Company) {
		title += " — " + r.Company
	}
	if r.AlreadySeen {
		label := "seen"
		if r.SeenDaysAgo != nil {
			label = fmt.Sprintf("seen %dd ago", *r.SeenDaysAgo)
		}
		return seenStyle.Render(title) + " " + badgeStyle.Render("("+label+")")
	}

	var badges []string
	if r.HasSalary {
		badges = append(badges, "salary")
	}
	if r.GhostPre {
		badges = append(badges, ghostStyle.Render("ghost?"))
	}
	if r.AgeDays != nil {
		badges = append(badges, fmt.Sprintf("%dd", *r.AgeDays))
	}
	badges = append(badges, r.Site)

	return title + " " + badgeStyle.Render("("+strings.Join(badges, ", ")+")")
}

// Run shows the interactive selector and returns the chosen postings.
// Aborting (q) returns an empty selection and ok=false.
func Run(results []model.DiscoveryResult) ([]model.DiscoveryResult, bool, error) {
	m := pickerModel{
		results:  results,
		selected: make(map[int]bool),
	}

	p := tea.NewProgram(m)
	out, err := p.Run()
	if err != nil {
		return nil, false, err
	}

	final := out.(pickerModel)
	if !final.done {
		return nil, false, nil
	}

	var chosen []model.DiscoveryResult
	for i, r := range results {
		if final.selected[i] {
			chosen = append(chosen, r)
		}
	}
	return chosen, true, nil
}
