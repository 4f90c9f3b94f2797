package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		if !m.started {
			m.started = true
			cmd := m.startFetch()
			return m, tea.Batch(cmd, m.spin.Tick)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.fetching && m.modal == modalNone {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case postsLoadedMsg:
		// A newer fetch is in flight: its settle message owns the flags.
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		m.fetching = false
		m.syncLists()
		return m, nil

	case postSavedMsg:
		m.form.saving = false
		if msg.err != "" {
			// Caller-local failure: flash it, keep the form open, list untouched.
			m.form.errMsg = msg.err
			return m, nil
		}
		m.modal = modalNone
		m.store.Select(nil)
		m.syncLists()
		verb := "updated"
		if msg.created {
			verb = "created"
		}
		cmd := m.flash(fmt.Sprintf("Publication %s (#%d)", verb, msg.post.ID), false)
		return m, cmd

	case postDeletedMsg:
		m.deleting = false
		m.modal = modalNone
		if msg.err != "" {
			cmd := m.flash("Delete failed: "+msg.err, true)
			return m, cmd
		}
		m.syncLists()
		m.clampTable()
		cmd := m.flash(fmt.Sprintf("Publication #%d deleted", msg.id), false)
		return m, cmd

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flashText = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalForm:
		closed, cmd := m.updateForm(msg)
		if closed {
			m.modal = modalNone
			m.store.Select(nil)
		}
		if m.form.saving {
			return m, tea.Batch(cmd, m.spin.Tick)
		}
		return m, cmd

	case modalConfirmDelete:
		return m.updateConfirm(msg)

	case modalDetail:
		switch msg.String() {
		case "esc", "q", "enter", "ctrl+g":
			m.modal = modalNone
			return m, nil
		case "e":
			if p, ok := m.store.Find(m.detailID); ok {
				m.store.Select(&p)
				m.form = newFormState(&p)
				m.modal = modalForm
			}
			return m, nil
		case "x", "d":
			m.confirmID = m.detailID
			m.confirm = confirmFocusCancel
			m.modal = modalConfirmDelete
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "ctrl+b":
		m.sidebarOpen = !m.sidebarOpen
		m.resizeLists()
		return m, nil
	case "1":
		return m.switchView(viewHome)
	case "2":
		return m.switchView(viewCards)
	case "3":
		return m.switchView(viewTable)
	case "tab":
		return m.switchView((m.view + 1) % 3)
	case "r":
		cmd := m.startFetch()
		return m, tea.Batch(cmd, m.spin.Tick)
	case "n":
		m.store.Select(nil)
		m.form = newFormState(nil)
		m.modal = modalForm
		return m, nil
	case "e":
		if p, ok := m.currentPost(); ok {
			m.store.Select(&p)
			m.form = newFormState(&p)
			m.modal = modalForm
		}
		return m, nil
	case "x", "d":
		if p, ok := m.currentPost(); ok {
			m.confirmID = p.ID
			m.confirm = confirmFocusCancel
			m.modal = modalConfirmDelete
		}
		return m, nil
	case "enter":
		if p, ok := m.currentPost(); ok {
			m.detailID = p.ID
			m.modal = modalDetail
		}
		return m, nil
	case "esc":
		// Dismiss the fetch-error banner; the stale list stays.
		m.store.ClearError()
		return m, nil
	}

	// Per-view navigation.
	switch m.view {
	case viewHome:
		var cmd tea.Cmd
		m.homeList, cmd = m.homeList.Update(msg)
		return m, cmd
	case viewCards:
		var cmd tea.Cmd
		m.cardsList, cmd = m.cardsList.Update(msg)
		return m, cmd
	case viewTable:
		switch msg.String() {
		case "up", "k":
			if m.tableIdx > 0 {
				m.tableIdx--
			}
		case "down", "j":
			if m.tableIdx < m.store.Len()-1 {
				m.tableIdx++
			}
		case "home", "g":
			m.tableIdx = 0
		case "end", "G":
			m.tableIdx = m.store.Len() - 1
		}
		m.clampTable()
		return m, nil
	}

	return m, nil
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.deleting {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}
	switch msg.String() {
	case "esc", "ctrl+g", "n":
		m.modal = modalNone
		return m, nil
	case "tab", "left", "right":
		if m.confirm == confirmFocusConfirm {
			m.confirm = confirmFocusCancel
		} else {
			m.confirm = confirmFocusConfirm
		}
		return m, nil
	case "y":
		cmd := m.startDelete(m.confirmID)
		return m, tea.Batch(cmd, m.spin.Tick)
	case "enter":
		if m.confirm == confirmFocusConfirm {
			cmd := m.startDelete(m.confirmID)
			return m, tea.Batch(cmd, m.spin.Tick)
		}
		m.modal = modalNone
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *appModel) switchView(v view) (tea.Model, tea.Cmd) {
	m.view = v
	// Entering a view refreshes the list.
	cmd := m.startFetch()
	return *m, tea.Batch(cmd, m.spin.Tick)
}

func (m *appModel) resizeLists() {
	w, h := m.contentSize()
	m.homeList.SetSize(w, h)
	m.cardsList.SetSize(w, h)
	m.clampTable()
}

// clampTable keeps the table selection and scroll offset within bounds.
func (m *appModel) clampTable() {
	n := m.store.Len()
	if m.tableIdx >= n {
		m.tableIdx = n - 1
	}
	if m.tableIdx < 0 {
		m.tableIdx = 0
	}
	_, h := m.contentSize()
	rows := h - 1
	if rows < 1 {
		rows = 1
	}
	if m.tableIdx < m.tableOff {
		m.tableOff = m.tableIdx
	}
	if m.tableIdx >= m.tableOff+rows {
		m.tableOff = m.tableIdx - rows + 1
	}
	if m.tableOff < 0 {
		m.tableOff = 0
	}
}
