package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aanand-mishra/alunos/internal/form"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle   = lipgloss.NewStyle().Width(8)
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	selectStyle  = lipgloss.NewStyle().Reverse(true)
	dialogStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	confirmStyle = dialogStyle.BorderForeground(lipgloss.Color("214"))
)

// View renders the form, the roster and, on top, the pending dialog.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.heading()))
	b.WriteString("\n\n")
	b.WriteString(m.formView())
	b.WriteString("\n")
	b.WriteString(m.rosterView())
	b.WriteString("\n")

	if len(m.dialogs) > 0 {
		b.WriteString(m.dialogView(m.dialogs[0]))
		b.WriteString("\n")
	} else {
		b.WriteString(helpStyle.Render(m.help()))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) heading() string {
	if e, ok := m.form.Mode().(form.Editing); ok {
		// The record may be gone after a reload; the id is all we have then.
		if s, ok := m.roster.Find(e.ID); ok {
			return fmt.Sprintf("Editing student #%d (%s)", e.ID, s.Name)
		}
		return fmt.Sprintf("Editing student #%d", e.ID)
	}
	return "New student"
}

func (m Model) formView() string {
	errs := m.form.Errors()

	var b strings.Builder
	for i, field := range formFields {
		label := labelStyle.Render(field.String())
		if i == m.focus {
			label = focusStyle.Render(labelStyle.Render(field.String()))
		}
		b.WriteString(label)
		b.WriteString(" ")
		b.WriteString(m.inputs[i].View())

		// Like most web forms, errors only show once the user typed.
		if msg, bad := errs[field]; bad && m.form.Touched(field) {
			b.WriteString("  ")
			b.WriteString(errorStyle.Render(field.String() + " " + msg))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) rosterView() string {
	var b strings.Builder

	header := fmt.Sprintf("%-5s %-24s %-28s %-15s %s", "ID", "Name", "Email", "Phone", "Course")
	if m.focus == focusRoster {
		header = focusStyle.Render(header)
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	if m.roster.Len() == 0 {
		b.WriteString(helpStyle.Render("no students"))
		b.WriteString("\n")
		return b.String()
	}

	for i, s := range m.roster.Students() {
		row := fmt.Sprintf("%-5d %-24s %-28s %-15s %d",
			s.ID, truncate(s.Name, 24), truncate(s.Email, 28), truncate(s.Phone, 15), s.CourseID)
		if m.focus == focusRoster && i == m.cursor {
			row = selectStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) dialogView(d dialog) string {
	switch d.kind {
	case dialogConfirm:
		return confirmStyle.Render(d.text + "\n\n" + helpStyle.Render("y: delete  n: keep"))
	default:
		return dialogStyle.Render(d.text + "\n\n" + helpStyle.Render("enter: OK"))
	}
}

func (m Model) help() string {
	if m.focus == focusRoster {
		return "↑/↓ select • e edit • d delete • r reload • tab form • ctrl+c quit"
	}
	if _, editing := m.form.Mode().(form.Editing); editing {
		return "enter save • esc cancel edit • tab next • ctrl+c quit"
	}
	return "enter save • tab next • ctrl+c quit"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
