// Package tui is the terminal form component for the aluno resource.
//
// Model owns the form and the roster. It is driven by bubbletea: key
// presses and request results arrive as messages on a single update
// loop, and every HTTP call runs as a tea.Cmd outside it. Nothing is
// shared with the commands, so no locking is needed.
package tui

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aanand-mishra/alunos/internal/form"
	"github.com/aanand-mishra/alunos/internal/notice"
	"github.com/aanand-mishra/alunos/internal/roster"
)

var formFields = form.Fields

// focusRoster follows the form inputs in the tab order.
var focusRoster = len(formFields)

type dialogKind int

const (
	dialogAlert dialogKind = iota
	dialogConfirm
)

// dialog blocks every other input until the user answers it.
type dialog struct {
	kind     dialogKind
	text     string
	deleteID int64 // target of a confirm
}

// Model is the bubbletea model of the component.
type Model struct {
	client Client
	log    *slog.Logger

	form   *form.Form
	roster *roster.Cache
	inputs []textinput.Model

	focus  int
	cursor int

	// dialogs are shown one at a time, oldest first.
	dialogs []dialog

	width, height int
}

// New builds the component. log may be nil.
func New(client Client, log *slog.Logger) Model {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	inputs := make([]textinput.Model, len(formFields))
	for i, field := range formFields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[field]
		ti.CharLimit = 100
		ti.Cursor.SetMode(cursor.CursorStatic)
		inputs[i] = ti
	}
	inputs[0].Focus()

	return Model{
		client: client,
		log:    log,
		form:   form.New(),
		roster: &roster.Cache{},
		inputs: inputs,
	}
}

var placeholders = map[form.Field]string{
	form.Name:     "at least 3 characters",
	form.Email:    "name@example.com",
	form.Phone:    "phone number",
	form.CourseID: "course id, e.g. 2",
}

// Init loads the roster.
func (m Model) Init() tea.Cmd {
	return loadCmd(m.client)
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if len(m.dialogs) > 0 {
			return m.updateDialog(msg)
		}
		return m.updateKeys(msg)

	case rosterLoadedMsg:
		m.roster.Replace(msg.students)
		m.clampCursor()
		return m, nil

	case rosterFailedMsg:
		m.log.Error("error loading students", slog.String("error", msg.err.Error()))
		m.alert(notice.LoadFailed)
		return m, nil

	case createdMsg:
		m.log.Info("student created", slog.Int64("id", msg.student.ID))
		m.alert(notice.Created(msg.student.ID))
		m.form.Complete()
		m.syncInputs()
		return m, loadCmd(m.client)

	case updatedMsg:
		m.log.Info("student updated", slog.Int64("id", msg.id))
		m.alert(notice.Updated)
		m.form.Complete()
		m.syncInputs()
		return m, loadCmd(m.client)

	case deletedMsg:
		m.log.Info("student deleted", slog.Int64("id", msg.id))
		m.alert(notice.Deleted)
		return m, loadCmd(m.client)

	case mutationFailedMsg:
		m.log.Error(msg.context, slog.String("error", msg.err.Error()))
		m.alert(notice.Failure(msg.err, msg.context))
		return m, nil

	case deleteFailedMsg:
		m.log.Error("error deleting student", slog.String("error", msg.err.Error()))
		m.alert(notice.DeleteFailed)
		return m, nil
	}

	return m, nil
}

func (m Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.dialogs[0]

	switch d.kind {
	case dialogAlert:
		switch msg.String() {
		case "enter", "esc", " ":
			m.dialogs = m.dialogs[1:]
		}
		return m, nil

	case dialogConfirm:
		switch msg.String() {
		case "y", "Y", "enter":
			m.dialogs = m.dialogs[1:]
			return m, deleteCmd(m.client, d.deleteID)
		case "n", "N", "esc":
			m.dialogs = m.dialogs[1:]
		}
		return m, nil
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.setFocus((m.focus + 1) % (focusRoster + 1))
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + focusRoster) % (focusRoster + 1))
		return m, nil
	case "esc":
		if _, editing := m.form.Mode().(form.Editing); editing {
			m.cancelEdit()
		}
		return m, nil
	}

	if m.focus == focusRoster {
		return m.updateRoster(msg)
	}

	if msg.Type == tea.KeyEnter {
		return m, m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	field := formFields[m.focus]
	if v := m.inputs[m.focus].Value(); v != m.form.Value(field) {
		m.form.Set(field, v)
	}
	return m, cmd
}

func (m Model) updateRoster(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.roster.Len()-1 {
			m.cursor++
		}
	case "e", "enter":
		if s, ok := m.roster.At(m.cursor); ok {
			m.form.StartEdit(s)
			m.syncInputs()
			m.setFocus(0)
		}
	case "d", "delete":
		if s, ok := m.roster.At(m.cursor); ok {
			m.dialogs = append(m.dialogs, dialog{
				kind:     dialogConfirm,
				text:     notice.DeleteConfirm,
				deleteID: s.ID,
			})
		}
	case "r":
		return m, loadCmd(m.client)
	}
	return m, nil
}

// submit returns the request command, or nil while the form is invalid.
func (m Model) submit() tea.Cmd {
	req, ok := m.form.Submit()
	if !ok {
		return nil
	}

	switch req.Op {
	case form.Update:
		return updateCmd(m.client, req.ID, req.Payload)
	default:
		return createCmd(m.client, req.Payload)
	}
}

func (m *Model) cancelEdit() {
	m.form.CancelEdit()
	m.syncInputs()
}

func (m *Model) alert(text string) {
	m.dialogs = append(m.dialogs, dialog{kind: dialogAlert, text: text})
}

// syncInputs copies the form values into the text inputs after the form
// was changed by something other than typing.
func (m *Model) syncInputs() {
	for i, field := range formFields {
		m.inputs[i].SetValue(m.form.Value(field))
		m.inputs[i].CursorEnd()
	}
}

func (m *Model) setFocus(i int) {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m *Model) clampCursor() {
	if m.cursor >= m.roster.Len() {
		m.cursor = m.roster.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
