package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/notekeeper/internal/accounts"
	"github.com/dmitrijs2005/notekeeper/internal/kvstore"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/notes"
	"github.com/stretchr/testify/require"
)

// testEnv bundles real stores over one memory key-value store.
type testEnv struct {
	kv       *kvstore.MemoryStore
	files    *notes.FileStore
	accounts *accounts.AccountStore
}

func newTestEnv(t *testing.T, capacity int64) *testEnv {
	t.Helper()
	stubTerminal(t, false, nil, nil)

	kv := kvstore.NewMemoryStore(capacity)
	env := &testEnv{
		kv:       kv,
		files:    notes.NewFileStore(kv, logging.Nop()),
		accounts: accounts.NewAccountStore(kv, logging.Nop(), accounts.DefaultAdmin()),
	}
	_, err := env.accounts.BootstrapAdmin(context.Background())
	require.NoError(t, err)
	return env
}

// run feeds script to a fresh App and returns everything it printed.
func (e *testEnv) run(t *testing.T, maxUpload int64, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	app := NewApp(e.files, e.accounts, logging.Nop(), Options{
		MaxUpload: maxUpload,
		In:        strings.NewReader(strings.Join(script, "\n") + "\n"),
		Out:       &out,
	})
	require.NoError(t, app.Run(context.Background()))
	return out.String()
}

func (e *testEnv) register(t *testing.T, username, password string) {
	t.Helper()
	_, err := e.accounts.Register(context.Background(), username, username+"@example.com", password)
	require.NoError(t, err)
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func pdfBytes(n int) []byte {
	b := bytes.Repeat([]byte{'.'}, n)
	copy(b, "%PDF-1.7\n")
	return b
}
