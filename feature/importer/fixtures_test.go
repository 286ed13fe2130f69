package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// writeWorkbook creates an xlsx file under root with the given sheets in order.
func writeWorkbook(t *testing.T, root, rel string, sheets ...string) string {
	t.Helper()
	require.NotEmpty(t, sheets)

	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheets[0]))
	for _, name := range sheets[1:] {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func compileDefaults(t *testing.T) *Settings {
	t.Helper()
	settings, err := DefaultConfig().Compile()
	require.NoError(t, err)
	return settings
}

func newTestResolver(t *testing.T, settings *Settings) *Resolver {
	t.Helper()
	return NewResolver(settings, nil, nil, zap.NewNop())
}

type mockSheetReader struct {
	mock.Mock
}

func (m *mockSheetReader) OpenSheets(path string) ([]string, error) {
	args := m.Called(path)
	if v := args.Get(0); v != nil {
		return v.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

// staticWalker lists a fixed set of paths without touching the filesystem.
type staticWalker struct {
	files []string
}

func (w staticWalker) ListFiles(string) ([]string, error) {
	return w.files, nil
}

func (w staticWalker) IsIgnored(root, path string) bool {
	return DirWalker{}.IsIgnored(root, path)
}
