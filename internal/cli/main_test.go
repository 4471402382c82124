package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/idilsaglam/inventory/internal/config"
	"github.com/idilsaglam/inventory/internal/model"
	"github.com/idilsaglam/inventory/internal/store/sqlitestore"
	"github.com/idilsaglam/inventory/internal/ui"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type result struct {
	code   int
	stdout string
	stderr string
}

// env is one workspace: a config path and a database path in a temp dir.
type env struct {
	t   *testing.T
	dir string
	db  string
	cfg string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	t.Setenv(config.EnvDatabase, "")
	t.Setenv(config.EnvTheme, "mono")
	dir := t.TempDir()
	return &env{
		t:   t,
		dir: dir,
		db:  filepath.Join(dir, "inventory.db"),
		cfg: filepath.Join(dir, "config.yaml"),
	}
}

func (e *env) run(args ...string) result {
	e.t.Helper()
	var out, errb bytes.Buffer
	oldOut, oldErr := ui.Out, ui.Err
	ui.Out, ui.Err = &out, &errb
	defer func() { ui.Out, ui.Err = oldOut, oldErr }()

	full := append([]string{"--config", e.cfg, "--db", e.db}, args...)
	code := Execute(context.Background(), full)
	return result{code: code, stdout: out.String(), stderr: errb.String()}
}

// items reads the database directly, after the command has closed it.
func (e *env) items() []model.Item {
	e.t.Helper()
	s, err := sqlitestore.Open(e.db)
	require.NoError(e.t, err)
	defer s.Close()
	items, err := s.List(context.Background())
	require.NoError(e.t, err)
	return items
}

func (e *env) seed(drafts ...model.Draft) {
	e.t.Helper()
	s, err := sqlitestore.Open(e.db)
	require.NoError(e.t, err)
	defer s.Close()
	for _, d := range drafts {
		_, err := s.Create(context.Background(), d)
		require.NoError(e.t, err)
	}
}
