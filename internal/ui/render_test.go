package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/inventory/internal/model"
)

func withMono(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := Out
	Out = &buf
	SetTheme("mono")
	SetColorForcing(false, true)
	t.Cleanup(func() {
		Out = old
		SetTheme("classic")
		SetColorForcing(false, false)
	})
	return &buf
}

func TestShareBar(t *testing.T) {
	withMono(t)
	assert.Equal(t, "#####.....  50%", ShareBar(5, 10, 10))
	assert.Equal(t, "..........   0%", ShareBar(0, 0, 10))
	assert.Equal(t, "########## 100%", ShareBar(12, 10, 10))
	assert.Equal(t, ".....  10%", ShareBar(1, 10, 2), "width is at least 5")
}

func TestPanelFramesLines(t *testing.T) {
	buf := withMono(t)
	Panel([]string{"ab", "abcd"})
	assert.Equal(t, "+------+\n| ab   |\n| abcd |\n+------+\n", buf.String())
}

func TestItemLinesAlignsColumns(t *testing.T) {
	withMono(t)
	lines := ItemLines([]model.Item{
		{ID: 1, Name: "Laptop", Category: "Electronics", Quantity: 5, Price: 899.99},
		{ID: 12, Name: "Pen", Quantity: 0, Price: 1.5},
	})
	require.Len(t, lines, 4)
	assert.Equal(t, "  ID  Name    Category     Qty   Price    Total", lines[0])
	assert.Equal(t, "  1   Laptop  Electronics    5  899.99  4499.95", lines[2])
	assert.Equal(t, "- 12  Pen                    0    1.50     0.00", lines[3], "empty stock is marked")
}

func TestItemLinesEmpty(t *testing.T) {
	withMono(t)
	assert.Equal(t, []string{"no items"}, ItemLines(nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ééééééé...", truncate(strings.Repeat("é", 20), 10))
}

func TestItemDetail(t *testing.T) {
	withMono(t)
	lines := ItemDetail(model.Item{ID: 3, Name: "Desk", Quantity: 2, Price: 150})
	assert.Equal(t, "Desk", lines[0])
	assert.Contains(t, lines, "Category (none)")
	assert.Contains(t, lines, "Total    300.00")
}

func TestOKAndFail(t *testing.T) {
	buf := withMono(t)
	var errb bytes.Buffer
	oldErr := Err
	Err = &errb
	defer func() { Err = oldErr }()

	OK("added")
	Fail("boom")
	assert.Equal(t, "✔ added\n", buf.String())
	assert.Equal(t, "✖ boom\n", errb.String())
}

func TestColorForcing(t *testing.T) {
	withMono(t)
	SetColorForcing(true, false)
	assert.Equal(t, "\033[31mx"+reset, C("\033[31m", "x"))
	assert.Equal(t, "x", C("", "x"))
	SetColorMode("never")
	assert.Equal(t, "x", C("\033[31m", "x"))
}
