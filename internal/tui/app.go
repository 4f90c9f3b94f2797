package tui

import (
	"context"
	"time"

	"pubdeck/internal/model"
	"pubdeck/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type view int

const (
	viewHome view = iota
	viewCards
	viewTable
)

func viewTitle(v view) string {
	switch v {
	case viewHome:
		return "Home"
	case viewCards:
		return "Card View"
	case viewTable:
		return "Table View"
	}
	return "Publications"
}

func viewSubtitle(v view) string {
	switch v {
	case viewHome:
		return "Manage your publications"
	case viewCards:
		return "All publications in card format"
	case viewTable:
		return "All publications in table format"
	}
	return ""
}

type modalKind int

const (
	modalNone modalKind = iota
	modalForm
	modalConfirmDelete
	modalDetail
)

type postsLoadedMsg struct {
	seq int
	err string
}

type postSavedMsg struct {
	post    model.Post
	created bool
	err     string
}

type postDeletedMsg struct {
	id  int
	err string
}

type flashDoneMsg struct{ seq int }

const fetchTimeout = 15 * time.Second

type appModel struct {
	store *store.Store

	width  int
	height int

	view        view
	sidebarOpen bool
	// started flips on the first WindowSizeMsg, which doubles as the
	// "view entered" moment that kicks the initial fetch.
	started bool

	homeList  list.Model
	cardsList list.Model
	tableIdx  int
	tableOff  int

	spin     spinner.Model
	fetchSeq int
	fetching bool

	modal      modalKind
	form       formState
	confirmID  int
	confirm    confirmModalFocus
	detailID   int
	deleting   bool
	flashText  string
	flashIsErr bool
	flashSeq   int
}

func newAppModel(st *store.Store) appModel {
	m := appModel{
		store:       st,
		view:        viewHome,
		sidebarOpen: true,
	}

	m.homeList = newPostList(newCompactPostDelegate())
	m.cardsList = newPostList(newPostCardDelegate())

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot

	return m
}

func newPostList(d list.ItemDelegate) list.Model {
	l := list.New([]list.Item{}, d, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	return l
}

// Run starts the interactive TUI over the given store.
func Run(st *store.Store) error {
	applyColorProfilePreference()
	m := newAppModel(st)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m appModel) Init() tea.Cmd {
	// The initial fetch waits for the first WindowSizeMsg so the mutated
	// fetch sequence lands in the model copy Update returns.
	return m.spin.Tick
}

// startFetch kicks a list reload. The sequence number lets Update ignore
// settle messages from superseded fetches; the store itself stays
// last-write-wins.
func (m *appModel) startFetch() tea.Cmd {
	m.fetchSeq++
	seq := m.fetchSeq
	m.fetching = true
	st := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		out := postsLoadedMsg{seq: seq}
		if err := st.FetchAll(ctx); err != nil {
			out.err = err.Error()
		}
		return out
	}
}

func (m *appModel) startSave(editID int, editing bool, d model.Draft) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		if editing {
			p, err := st.Update(ctx, editID, d)
			out := postSavedMsg{post: p}
			if err != nil {
				out.err = err.Error()
			}
			return out
		}
		p, err := st.Create(ctx, d)
		out := postSavedMsg{post: p, created: true}
		if err != nil {
			out.err = err.Error()
		}
		return out
	}
}

func (m *appModel) startDelete(id int) tea.Cmd {
	m.deleting = true
	st := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		out := postDeletedMsg{id: id}
		if err := st.Delete(ctx, id); err != nil {
			out.err = err.Error()
		}
		return out
	}
}

func (m *appModel) flash(text string, isErr bool) tea.Cmd {
	m.flashText = text
	m.flashIsErr = isErr
	m.flashSeq++
	seq := m.flashSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}

// syncLists refreshes both bubbles lists from the store snapshot and clamps
// the table selection.
func (m *appModel) syncLists() {
	posts := m.store.Posts()
	items := make([]list.Item, 0, len(posts))
	for _, p := range posts {
		items = append(items, postItem{post: p})
	}
	m.homeList.SetItems(items)
	m.cardsList.SetItems(items)
	if m.tableIdx >= len(posts) {
		m.tableIdx = len(posts) - 1
	}
	if m.tableIdx < 0 {
		m.tableIdx = 0
	}
}

// currentPost is the post under the cursor in the active view.
func (m appModel) currentPost() (model.Post, bool) {
	switch m.view {
	case viewHome:
		if it, ok := m.homeList.SelectedItem().(postItem); ok {
			return it.post, true
		}
	case viewCards:
		if it, ok := m.cardsList.SelectedItem().(postItem); ok {
			return it.post, true
		}
	case viewTable:
		posts := m.store.Posts()
		if m.tableIdx >= 0 && m.tableIdx < len(posts) {
			return posts[m.tableIdx], true
		}
	}
	return model.Post{}, false
}
