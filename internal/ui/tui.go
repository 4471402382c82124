package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/inventory/internal/model"
)

// ItemStore is what the interactive view needs from the record store.
type ItemStore interface {
	Create(ctx context.Context, d model.Draft) (int64, error)
	Get(ctx context.Context, id int64) (model.Item, error)
	List(ctx context.Context) ([]model.Item, error)
	Update(ctx context.Context, id int64, d model.Draft) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, term string) ([]model.Item, error)
	Export(ctx context.Context, path string) error
	Import(ctx context.Context, path string) (int, error)
}

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeForm
	modeConfirmDelete
	modePath
)

// form fields, in tab order
const (
	fieldName = iota
	fieldCategory
	fieldQuantity
	fieldPrice
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Category", "Quantity", "Price"}

const defaultCSV = "inventory.csv"

type keyMap struct {
	Add, Edit, Delete, Search, Export, Import, Quit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Export: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
		Import: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Search, k.Export, k.Import, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

type modelTUI struct {
	ctx    context.Context
	store  ItemStore
	styles tuiStyles
	keys   keyMap
	help   help.Model

	table   table.Model
	items   []model.Item // rows currently shown, same order as the table
	summary model.Summary

	mode   mode
	search textinput.Model

	// add / edit form
	form    [fieldCount]textinput.Model
	focus   int
	editID  int64 // 0 while adding
	formErr string

	// export / import prompt
	path       textinput.Model
	pathAction string

	status    string
	statusErr bool

	width, height int
}

// RunInteractive starts the full-screen view over store. Every change is
// written through immediately; quitting has nothing left to save.
func RunInteractive(ctx context.Context, store ItemStore) error {
	p := tea.NewProgram(newModelTUI(ctx, store), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func newModelTUI(ctx context.Context, store ItemStore) modelTUI {
	st := newTUIStyles(Current())

	ts := table.DefaultStyles()
	ts.Header = st.header
	ts.Selected = st.selected
	t := table.New(
		table.WithColumns(tableColumns(80)),
		table.WithFocused(true),
		table.WithHeight(15),
		table.WithStyles(ts),
	)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "name or category..."
	search.CharLimit = 100

	var form [fieldCount]textinput.Model
	for i := range form {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 200
		form[i] = ti
	}
	form[fieldQuantity].CharLimit = 12
	form[fieldPrice].CharLimit = 24

	path := textinput.New()
	path.Prompt = "> "
	path.Placeholder = defaultCSV
	path.CharLimit = 500

	m := modelTUI{
		ctx:    ctx,
		store:  store,
		styles: st,
		keys:   newKeyMap(),
		help:   help.New(),
		table:  t,
		search: search,
		form:   form,
		path:   path,
	}
	m.reload()
	return m
}

// tableColumns splits the available width between name and category.
func tableColumns(width int) []table.Column {
	const fixed = 6 + 6 + 10 + 12 + 6*2
	flex := width - fixed
	if flex < 20 {
		flex = 20
	}
	name := flex * 3 / 5
	return []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Name", Width: name},
		{Title: "Category", Width: flex - name},
		{Title: "Qty", Width: 6},
		{Title: "Price", Width: 10},
		{Title: "Total", Width: 12},
	}
}

func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.mode {
	case modeSearch:
		return m.updateSearch(msg)
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	case modePath:
		return m.updatePath(msg)
	}
	return m.updateBrowse(msg)
}

func (m modelTUI) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case k.String() == "esc" && m.search.Value() != "":
			m.search.SetValue("")
			m.reload()
			return m, nil
		case key.Matches(k, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(k, m.keys.Search):
			m.mode = modeSearch
			m.table.Blur()
			cmd := m.search.Focus()
			return m, cmd
		case key.Matches(k, m.keys.Add):
			cmd := m.openForm(nil)
			return m, cmd
		case key.Matches(k, m.keys.Edit):
			id, ok := m.selectedID()
			if !ok {
				return m, nil
			}
			// re-read so the form starts from what is stored now
			it, err := m.store.Get(m.ctx, id)
			if err != nil {
				m.setStatus("edit: "+err.Error(), true)
				m.reload()
				return m, nil
			}
			cmd := m.openForm(&it)
			return m, cmd
		case key.Matches(k, m.keys.Delete):
			if _, ok := m.selectedID(); ok {
				m.mode = modeConfirmDelete
				m.table.Blur()
			}
			return m, nil
		case key.Matches(k, m.keys.Export):
			cmd := m.openPath("export")
			return m, cmd
		case key.Matches(k, m.keys.Import):
			cmd := m.openPath("import")
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m modelTUI) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.search.SetValue("")
			m.search.Blur()
			m.mode = modeBrowse
			m.table.Focus()
			m.reload()
			return m, nil
		case "enter":
			m.search.Blur()
			m.mode = modeBrowse
			m.table.Focus()
			return m, nil
		}
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.reload()
	}
	return m, cmd
}

func (m *modelTUI) openForm(it *model.Item) tea.Cmd {
	m.mode = modeForm
	m.formErr = ""
	m.editID = 0
	m.table.Blur()
	for i := range m.form {
		m.form[i].SetValue("")
	}
	m.form[fieldName].Placeholder = "Item name..."
	m.form[fieldCategory].Placeholder = "optional"
	m.form[fieldQuantity].Placeholder = "0"
	m.form[fieldPrice].Placeholder = "0.00"
	if it != nil {
		m.editID = it.ID
		m.form[fieldName].SetValue(it.Name)
		m.form[fieldCategory].SetValue(it.Category)
		m.form[fieldQuantity].SetValue(fmt.Sprint(it.Quantity))
		m.form[fieldPrice].SetValue(model.FormatPrice(it.Price))
		for i := range m.form {
			m.form[i].CursorEnd()
		}
	}
	return m.focusField(fieldName)
}

func (m *modelTUI) focusField(i int) tea.Cmd {
	m.focus = (i + fieldCount) % fieldCount
	for j := range m.form {
		m.form[j].Blur()
	}
	return m.form[m.focus].Focus()
}

func (m *modelTUI) closeForm() {
	for i := range m.form {
		m.form[i].Blur()
	}
	m.mode = modeBrowse
	m.table.Focus()
}

func (m modelTUI) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.closeForm()
			return m, nil
		case "tab", "down":
			cmd := m.focusField(m.focus + 1)
			return m, cmd
		case "shift+tab", "up":
			cmd := m.focusField(m.focus - 1)
			return m, cmd
		case "enter":
			if m.focus < fieldCount-1 {
				cmd := m.focusField(m.focus + 1)
				return m, cmd
			}
			m.submitForm()
			return m, nil
		case "ctrl+s":
			m.submitForm()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.form[m.focus], cmd = m.form[m.focus].Update(msg)
	return m, cmd
}

func (m *modelTUI) submitForm() {
	d, err := model.ParseDraft(
		m.form[fieldName].Value(),
		m.form[fieldCategory].Value(),
		orZero(m.form[fieldQuantity].Value()),
		orZero(m.form[fieldPrice].Value()),
	)
	if err != nil {
		m.formErr = err.Error()
		return
	}

	id := m.editID
	if id == 0 {
		id, err = m.store.Create(m.ctx, d)
		if err != nil {
			m.formErr = "save failed: " + err.Error()
			return
		}
		m.setStatus(fmt.Sprintf("added #%d %s", id, d.Name), false)
	} else {
		if err := m.store.Update(m.ctx, id, d); err != nil {
			m.formErr = "save failed: " + err.Error()
			return
		}
		m.setStatus(fmt.Sprintf("updated #%d %s", id, d.Name), false)
	}
	m.closeForm()
	m.reload()
	m.selectID(id)
}

// orZero lets blank numeric fields mean zero, as the placeholders show.
func orZero(s string) string {
	if strings.TrimSpace(s) == "" {
		return "0"
	}
	return s
}

func (m modelTUI) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "y", "Y":
		if id, ok := m.selectedID(); ok {
			if err := m.store.Delete(m.ctx, id); err != nil {
				m.setStatus("delete: "+err.Error(), true)
			} else {
				m.setStatus(fmt.Sprintf("deleted #%d", id), false)
			}
		}
		m.mode = modeBrowse
		m.table.Focus()
		m.reload()
	case "n", "N", "esc":
		m.mode = modeBrowse
		m.table.Focus()
	}
	return m, nil
}

func (m *modelTUI) openPath(action string) tea.Cmd {
	m.mode = modePath
	m.pathAction = action
	m.path.SetValue("")
	m.table.Blur()
	return m.path.Focus()
}

func (m modelTUI) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.path.Blur()
			m.mode = modeBrowse
			m.table.Focus()
			return m, nil
		case "enter":
			p := strings.TrimSpace(m.path.Value())
			if p == "" {
				p = defaultCSV
			}
			m.runTransfer(p)
			m.path.Blur()
			m.mode = modeBrowse
			m.table.Focus()
			m.reload()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return m, cmd
}

func (m *modelTUI) runTransfer(path string) {
	switch m.pathAction {
	case "export":
		if err := m.store.Export(m.ctx, path); err != nil {
			m.setStatus("export failed: "+err.Error(), true)
			return
		}
		m.setStatus(fmt.Sprintf("exported %d items to %s", m.summary.Items, path), false)
	case "import":
		n, err := m.store.Import(m.ctx, path)
		if err != nil {
			m.setStatus("import failed, nothing imported: "+err.Error(), true)
			return
		}
		m.setStatus(fmt.Sprintf("imported %d items from %s", n, path), false)
	}
}

// reload refreshes the rows from the store. A blank search term shows
// every item.
func (m *modelTUI) reload() {
	all, err := m.store.List(m.ctx)
	if err != nil {
		m.setStatus("load: "+err.Error(), true)
		return
	}
	m.summary = model.Summarize(all)

	items := all
	if term := strings.TrimSpace(m.search.Value()); term != "" {
		if items, err = m.store.Search(m.ctx, term); err != nil {
			m.setStatus("search: "+err.Error(), true)
			return
		}
	}
	m.items = items

	rows := make([]table.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, table.Row(Row(it)))
	}
	m.table.SetRows(rows)
	if n := len(rows); n > 0 && m.table.Cursor() >= n {
		m.table.SetCursor(n - 1)
	}
}

func (m modelTUI) selectedID() (int64, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.items) {
		return 0, false
	}
	return m.items[c].ID, true
}

func (m *modelTUI) selectID(id int64) {
	for i, it := range m.items {
		if it.ID == id {
			m.table.SetCursor(i)
			return
		}
	}
}

func (m *modelTUI) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

func (m *modelTUI) resize(w, h int) {
	m.width, m.height = w, h
	m.help.Width = w - 4
	m.table.SetColumns(tableColumns(w - 6))
	// header, search, status, help, borders and an open form
	th := h - 16
	if th < 3 {
		th = 3
	}
	m.table.SetHeight(th)
}

func (m modelTUI) View() string {
	st := m.styles
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s   %s %d  %s %d  %s %s",
		st.title.Render("Inventory"),
		st.accent.Render("items"), m.summary.Items,
		st.accent.Render("units"), m.summary.Units,
		st.accent.Render("value"), Money(m.summary.Value),
	))
	b.WriteString("\n")

	if m.mode == modeSearch || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString(st.muted.Render(fmt.Sprintf("  %d match(es)", len(m.items))))
		b.WriteString("\n")
	}

	b.WriteString(m.table.View())
	if len(m.items) == 0 {
		b.WriteString("\n" + st.muted.Render("no items"))
	}

	switch m.mode {
	case modeForm:
		b.WriteString("\n" + st.box.Render(m.formView()))
	case modeConfirmDelete:
		name := ""
		if c := m.table.Cursor(); c >= 0 && c < len(m.items) {
			name = m.items[c].Name
		}
		b.WriteString("\n" + st.box.Render(st.warn.Render(fmt.Sprintf("Delete %q? (y/n)", name))))
	case modePath:
		title := "Export to CSV file"
		if m.pathAction == "import" {
			title = "Import from CSV file"
		}
		b.WriteString("\n" + st.box.Render(title+"\n"+m.path.View()))
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(st.err.Render("✖ " + m.status))
		} else {
			b.WriteString(st.success.Render("✔ " + m.status))
		}
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return st.panel.Render(b.String())
}

func (m modelTUI) formView() string {
	title := "Add item"
	if m.editID != 0 {
		title = fmt.Sprintf("Edit item #%d", m.editID)
	}
	if m.formErr != "" {
		title += ": " + m.styles.err.Render(m.formErr)
	}
	lines := []string{title}
	for i, ti := range m.form {
		label := fmt.Sprintf("%-9s", fieldLabels[i])
		if i == m.focus {
			label = m.styles.accent.Render(label)
		}
		lines = append(lines, label+" "+ti.View())
	}
	lines = append(lines, m.styles.muted.Render("tab next · enter save on last field · ctrl+s save · esc cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
