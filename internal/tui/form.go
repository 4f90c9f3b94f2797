package tui

import (
	"fmt"
	"strings"

	"pubdeck/internal/fileval"
	"pubdeck/internal/model"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formFocus int

const (
	formFocusTitle formFocus = iota
	formFocusBody
	formFocusAttachments
)

// formState backs the create/edit modal. Attachments live here, in memory,
// for the lifetime of the form only; the posts API has no attachment
// endpoint, so they are never uploaded.
type formState struct {
	editing bool
	editID  int

	title textinput.Model
	body  textarea.Model
	focus formFocus

	attachments []fileval.Attachment
	attachIdx   int

	// pathPrompt is active while the user types a file path to attach.
	pathPrompt  bool
	pathInput   textinput.Model
	previewLine string
	errMsg      string
	saving      bool
}

func newFormState(p *model.Post) formState {
	ti := textinput.New()
	ti.Placeholder = "Title (min 3 characters)"
	ti.CharLimit = 200
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "Body (min 10 characters)"
	ta.SetHeight(6)

	pi := textinput.New()
	pi.Placeholder = "Path to a PDF or JPG (max 5MB)"

	f := formState{
		title:     ti,
		body:      ta,
		pathInput: pi,
	}
	if p != nil {
		f.editing = true
		f.editID = p.ID
		f.title.SetValue(p.Title)
		f.body.SetValue(p.Body)
	}
	return f
}

func (f formState) draft() model.Draft {
	return model.Draft{
		Title: strings.TrimSpace(f.title.Value()),
		Body:  strings.TrimSpace(f.body.Value()),
	}
}

func (f *formState) setFocus(focus formFocus) {
	f.focus = focus
	f.title.Blur()
	f.body.Blur()
	switch focus {
	case formFocusTitle:
		f.title.Focus()
	case formFocusBody:
		f.body.Focus()
	}
}

func (f *formState) nextFocus() {
	switch f.focus {
	case formFocusTitle:
		f.setFocus(formFocusBody)
	case formFocusBody:
		f.setFocus(formFocusAttachments)
	default:
		f.setFocus(formFocusTitle)
	}
}

// addAttachment validates the file at path and appends it on acceptance.
// Each file is validated independently; a rejection only reports, it never
// clears what was already accepted.
func (f *formState) addAttachment(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		return
	}
	a, res, err := fileval.Inspect(path)
	if err != nil {
		f.errMsg = err.Error()
		return
	}
	if !res.OK {
		f.errMsg = a.Name + ": " + res.Reason
		return
	}
	f.errMsg = ""
	f.attachments = append(f.attachments, a)
	f.attachIdx = len(f.attachments) - 1
}

func (f *formState) removeAttachment() {
	if f.attachIdx < 0 || f.attachIdx >= len(f.attachments) {
		return
	}
	f.attachments = append(f.attachments[:f.attachIdx], f.attachments[f.attachIdx+1:]...)
	if f.attachIdx >= len(f.attachments) {
		f.attachIdx = len(f.attachments) - 1
	}
	f.previewLine = ""
}

// previewAttachment builds the data: URL for the selected attachment and
// keeps a truncated head of it for display.
func (f *formState) previewAttachment() {
	if f.attachIdx < 0 || f.attachIdx >= len(f.attachments) {
		return
	}
	url, err := fileval.PreviewDataURL(f.attachments[f.attachIdx])
	if err != nil {
		f.errMsg = err.Error()
		return
	}
	f.errMsg = ""
	f.previewLine = truncateTo(url, 64)
}

// updateForm handles key input while the form modal is open. It returns
// true when the form wants to close (cancel), and a save command when the
// user submits.
func (m *appModel) updateForm(msg tea.KeyMsg) (closed bool, cmd tea.Cmd) {
	f := &m.form

	if f.pathPrompt {
		switch msg.String() {
		case "esc", "ctrl+g":
			f.pathPrompt = false
			f.pathInput.SetValue("")
			return false, nil
		case "enter":
			f.addAttachment(f.pathInput.Value())
			f.pathPrompt = false
			f.pathInput.SetValue("")
			return false, nil
		}
		var c tea.Cmd
		f.pathInput, c = f.pathInput.Update(msg)
		return false, c
	}

	switch msg.String() {
	case "esc", "ctrl+g":
		return true, nil
	case "tab":
		f.nextFocus()
		return false, nil
	case "shift+tab":
		switch f.focus {
		case formFocusTitle:
			f.setFocus(formFocusAttachments)
		case formFocusBody:
			f.setFocus(formFocusTitle)
		default:
			f.setFocus(formFocusBody)
		}
		return false, nil
	case "ctrl+a":
		f.pathPrompt = true
		f.pathInput.Focus()
		return false, nil
	case "ctrl+s":
		d := f.draft()
		if err := d.Validate(); err != nil {
			f.errMsg = err.Error()
			return false, nil
		}
		f.errMsg = ""
		f.saving = true
		return false, m.startSave(f.editID, f.editing, d)
	}

	if f.focus == formFocusAttachments {
		switch msg.String() {
		case "up", "k":
			if f.attachIdx > 0 {
				f.attachIdx--
			}
			return false, nil
		case "down", "j":
			if f.attachIdx < len(f.attachments)-1 {
				f.attachIdx++
			}
			return false, nil
		case "backspace", "delete", "x":
			f.removeAttachment()
			return false, nil
		case "p":
			f.previewAttachment()
			return false, nil
		}
		return false, nil
	}

	var c tea.Cmd
	switch f.focus {
	case formFocusTitle:
		f.title, c = f.title.Update(msg)
	case formFocusBody:
		f.body, c = f.body.Update(msg)
	}
	return false, c
}

func (m appModel) renderForm() string {
	f := m.form
	bodyW := modalBodyWidth(m.width)

	title := "New publication"
	if f.editing {
		title = fmt.Sprintf("Edit publication #%d", f.editID)
	}

	label := lipgloss.NewStyle().Foreground(colorChromeMutedFg)
	active := lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	titleLabel := label.Render("Title")
	bodyLabel := label.Render("Body")
	attachLabel := label.Render("Attachments")
	switch f.focus {
	case formFocusTitle:
		titleLabel = active.Render("Title")
	case formFocusBody:
		bodyLabel = active.Render("Body")
	case formFocusAttachments:
		attachLabel = active.Render("Attachments")
	}

	var b strings.Builder
	b.WriteString(titleLabel + "\n")
	b.WriteString(f.title.View() + "\n\n")
	b.WriteString(bodyLabel + "\n")
	b.WriteString(f.body.View() + "\n\n")

	b.WriteString(attachLabel + "\n")
	if len(f.attachments) == 0 {
		b.WriteString(styleMuted().Render("(none — ctrl+a to attach a PDF or JPG, max 5MB)") + "\n")
	}
	for i, a := range f.attachments {
		marker := "  "
		if f.focus == formFocusAttachments && i == f.attachIdx {
			marker = "> "
		}
		line := fmt.Sprintf("%s%s  %s  %s", marker, a.Name, a.MediaType, formatSize(a.SizeBytes))
		b.WriteString(truncateTo(line, bodyW) + "\n")
	}
	if f.previewLine != "" {
		b.WriteString(styleMuted().Render("preview: "+f.previewLine) + "\n")
	}

	if f.pathPrompt {
		b.WriteString("\n" + label.Render("Attach file") + "\n")
		b.WriteString(f.pathInput.View() + "\n")
	}

	if f.errMsg != "" {
		b.WriteString("\n" + styleError().Render(truncateTo(f.errMsg, bodyW)) + "\n")
	}

	help := "tab: next field   ctrl+a: attach   ctrl+s: save   esc: cancel"
	if f.focus == formFocusAttachments {
		help = "j/k: select   x: remove   p: preview   ctrl+s: save   esc: cancel"
	}
	if f.saving {
		help = "saving…"
	}
	b.WriteString("\n" + styleMuted().Width(bodyW).Render(help))

	return renderModalBox(m.width, title, b.String())
}

func formatSize(n int64) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.1fMB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.1fKB", float64(n)/1024)
	default:
		return fmt.Sprintf("%dB", n)
	}
}
