package ui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/inventory/internal/model"
	"github.com/idilsaglam/inventory/internal/store/sqlitestore"
)

func newTestTUI(t *testing.T, seed ...model.Draft) (modelTUI, *sqlitestore.Store) {
	t.Helper()
	s, err := sqlitestore.Open(filepath.Join(t.TempDir(), "inventory.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	for _, d := range seed {
		_, err := s.Create(context.Background(), d)
		require.NoError(t, err)
	}
	return newModelTUI(context.Background(), s), s
}

func press(t *testing.T, m modelTUI, keys ...tea.KeyMsg) modelTUI {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(modelTUI)
		require.True(t, ok)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func TestTUILoadsItemsOrderedByName(t *testing.T) {
	m, _ := newTestTUI(t,
		model.Draft{Name: "Pencil", Quantity: 1, Price: 1},
		model.Draft{Name: "Desk", Quantity: 2, Price: 3},
	)
	require.Len(t, m.items, 2)
	assert.Equal(t, "Desk", m.items[0].Name)
	assert.Equal(t, 2, m.summary.Items)
	assert.InDelta(t, 7.0, m.summary.Value, 1e-9)
	assert.Contains(t, m.View(), "Pencil")
}

func TestTUIAddItem(t *testing.T) {
	m, s := newTestTUI(t)

	m = press(t, m, runes("a"))
	require.Equal(t, modeForm, m.mode)
	m = press(t, m, runes("Widget"), tab, runes("Tools"), tab, runes("3"), tab, runes("2.5"), enter)

	assert.Equal(t, modeBrowse, m.mode)
	assert.False(t, m.statusErr)
	assert.Contains(t, m.status, "added")

	items, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, model.Draft{Name: "Widget", Category: "Tools", Quantity: 3, Price: 2.5}, items[0].Draft())
}

func TestTUIAddRejectsInvalidInput(t *testing.T) {
	m, s := newTestTUI(t)

	m = press(t, m, runes("a"), runes("Widget"), tab, tab, runes("-4"), tab, enter)
	assert.Equal(t, modeForm, m.mode)
	assert.Equal(t, model.ErrNegativeQuantity.Error(), m.formErr)

	m = press(t, m, esc)
	assert.Equal(t, modeBrowse, m.mode)

	items, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTUIBlankNumbersMeanZero(t *testing.T) {
	m, s := newTestTUI(t)
	m = press(t, m, runes("a"), runes("Free sample"), tab, tab, tab, enter)
	assert.Equal(t, modeBrowse, m.mode)

	items, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Zero(t, items[0].Quantity)
	assert.Zero(t, items[0].Price)
}

func TestTUIEditItem(t *testing.T) {
	m, s := newTestTUI(t,
		model.Draft{Name: "Alpha", Quantity: 1, Price: 1},
		model.Draft{Name: "Beta", Category: "Old", Quantity: 1, Price: 1},
	)

	m = press(t, m, down, runes("e"))
	require.Equal(t, modeForm, m.mode)
	assert.Equal(t, "Beta", m.form[fieldName].Value())

	// replace the category, keep the rest
	m = press(t, m, tab)
	m.form[fieldCategory].SetValue("")
	m = press(t, m, runes("New"), tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, modeBrowse, m.mode)
	assert.Contains(t, m.status, "updated")

	items, err := s.Search(context.Background(), "Beta")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "New", items[0].Category)
}

func TestTUIDeleteWithConfirmation(t *testing.T) {
	m, s := newTestTUI(t, model.Draft{Name: "Doomed", Quantity: 1, Price: 1})

	m = press(t, m, runes("d"))
	require.Equal(t, modeConfirmDelete, m.mode)
	assert.Contains(t, m.View(), "Doomed")

	m = press(t, m, runes("n"))
	assert.Equal(t, modeBrowse, m.mode)
	assert.Len(t, m.items, 1)

	m = press(t, m, runes("d"), runes("y"))
	assert.Equal(t, modeBrowse, m.mode)
	assert.Empty(t, m.items)
	assert.Contains(t, m.status, "deleted")

	items, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTUILiveSearch(t *testing.T) {
	m, _ := newTestTUI(t,
		model.Draft{Name: "Laptop", Category: "Electronics", Quantity: 5, Price: 899.99},
		model.Draft{Name: "Desktop", Category: "Electronics", Quantity: 3, Price: 1299.99},
		model.Draft{Name: "Pencil", Category: "Office Supplies", Quantity: 100, Price: 0.99},
	)

	m = press(t, m, runes("/"), runes("office"))
	require.Equal(t, modeSearch, m.mode)
	require.Len(t, m.items, 1)
	assert.Equal(t, "Pencil", m.items[0].Name)
	// the header always summarizes the whole inventory
	assert.Equal(t, 3, m.summary.Items)

	m = press(t, m, enter)
	assert.Equal(t, modeBrowse, m.mode)
	assert.Len(t, m.items, 1)

	// esc in browse clears the filter before it quits
	m = press(t, m, esc)
	assert.Len(t, m.items, 3)
}

func TestTUIBlankSearchShowsAll(t *testing.T) {
	m, _ := newTestTUI(t,
		model.Draft{Name: "A", Quantity: 1, Price: 1},
		model.Draft{Name: "B", Quantity: 1, Price: 1},
	)
	m = press(t, m, runes("/"), runes("   "))
	assert.Len(t, m.items, 2)
}

func TestTUIExportThenImport(t *testing.T) {
	m, s := newTestTUI(t, model.Draft{Name: "Crate", Category: "Storage", Quantity: 4, Price: 12})
	path := filepath.Join(t.TempDir(), "out.csv")

	m = press(t, m, runes("x"), runes(path), enter)
	assert.False(t, m.statusErr, m.status)
	_, err := os.Stat(path)
	require.NoError(t, err)

	m = press(t, m, runes("i"), runes(path), enter)
	assert.False(t, m.statusErr, m.status)
	assert.Contains(t, m.status, "imported 1 items")

	items, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Len(t, m.items, 2)
}

func TestTUIImportFailureReportsStatus(t *testing.T) {
	m, _ := newTestTUI(t)
	m = press(t, m, runes("i"), runes(filepath.Join(t.TempDir(), "missing.csv")), enter)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "import failed")
}

func TestTUIQuit(t *testing.T) {
	m, _ := newTestTUI(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestTUIResize(t *testing.T) {
	m, _ := newTestTUI(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(modelTUI)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
	assert.Equal(t, 116, m.help.Width)
}
