package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aanand-mishra/alunos/internal/notice"
	"github.com/aanand-mishra/alunos/internal/types"
)

// Client is the subset of the gateway the UI needs.
type Client interface {
	List(ctx context.Context) ([]types.Student, error)
	Create(ctx context.Context, in types.StudentInput) (types.Student, error)
	Update(ctx context.Context, id int64, in types.StudentInput) error
	Remove(ctx context.Context, id int64) error
}

// Results of the commands below. Each command runs off the update loop
// and reports back with exactly one of these.
type (
	rosterLoadedMsg struct{ students []types.Student }
	rosterFailedMsg struct{ err error }

	createdMsg struct{ student types.Student }
	updatedMsg struct{ id int64 }
	deletedMsg struct{ id int64 }

	// mutationFailedMsg carries a failed create or update together with
	// the text that prefixes its dialog.
	mutationFailedMsg struct {
		err     error
		context string
	}
	deleteFailedMsg struct{ err error }
)

func loadCmd(c Client) tea.Cmd {
	return func() tea.Msg {
		students, err := c.List(context.Background())
		if err != nil {
			return rosterFailedMsg{err: err}
		}
		return rosterLoadedMsg{students: students}
	}
}

func createCmd(c Client, in types.StudentInput) tea.Cmd {
	return func() tea.Msg {
		s, err := c.Create(context.Background(), in)
		if err != nil {
			return mutationFailedMsg{err: err, context: notice.CreateContext}
		}
		return createdMsg{student: s}
	}
}

func updateCmd(c Client, id int64, in types.StudentInput) tea.Cmd {
	return func() tea.Msg {
		if err := c.Update(context.Background(), id, in); err != nil {
			return mutationFailedMsg{err: err, context: notice.UpdateContext}
		}
		return updatedMsg{id: id}
	}
}

func deleteCmd(c Client, id int64) tea.Cmd {
	return func() tea.Msg {
		if err := c.Remove(context.Background(), id); err != nil {
			return deleteFailedMsg{err: err}
		}
		return deletedMsg{id: id}
	}
}
