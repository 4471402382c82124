package sqlitestore

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/idilsaglam/inventory/internal/model"
)

func newObservedStore(t *testing.T) (*Store, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	s, err := Open(filepath.Join(t.TempDir(), "inventory.db"), WithLogger(zap.New(core)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, logs
}

func TestRejectedInputLogsAtDebug(t *testing.T) {
	s, logs := newObservedStore(t)
	ctx := context.Background()
	dir := t.TempDir()

	_, err := s.Get(ctx, 42)
	require.Error(t, err)
	_, err = s.ImportFrom(ctx, strings.NewReader("ID,Name,Category,Quantity,Price\n1,X,,many,1\n"))
	require.Error(t, err)
	_, err = s.ImportFrom(ctx, strings.NewReader("ID,Name,Category,Quantity,Price\n1,X,,1,-2\n"))
	require.Error(t, err)
	_, err = s.ImportFrom(ctx, strings.NewReader(""))
	require.Error(t, err)
	_, err = s.ImportFrom(ctx, strings.NewReader("a,\"b\n"))
	require.Error(t, err)
	_, err = s.Import(ctx, filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	err = s.Export(ctx, filepath.Join(dir, "no", "such", "dir", "out.csv"))
	require.Error(t, err)

	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	assert.Equal(t, 7, logs.FilterMessage("store operation rejected").Len())
}

func TestStorageFaultLogsAtError(t *testing.T) {
	s, logs := newObservedStore(t)
	_, err := s.db.Exec("DROP TABLE inventory")
	require.NoError(t, err)

	_, err = s.Create(context.Background(), model.Draft{Name: "x"})
	require.Error(t, err)

	errs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, errs, 1)
	assert.Equal(t, "create", errs[0].ContextMap()["op"])
}
