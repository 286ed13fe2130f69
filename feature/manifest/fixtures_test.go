package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"table-importer/core/database"
	"table-importer/feature/importer"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

// setupStore returns a migrated store on a private in-memory database.
func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	store := NewStore(db)
	require.NoError(t, store.Migrate())
	return store
}

func table(namespace, name, valueType string, inputs ...string) importer.TableImport {
	return importer.TableImport{
		Namespace:          namespace,
		Name:               name,
		ValueType:          valueType,
		ReadSchemaFromFile: true,
		Mode:               importer.TableModeMap,
		Comment:            importer.AutoImportComment,
		Groups:             []string{},
		InputFiles:         inputs,
	}
}

func sampleManifest(runID string, at time.Time) *Manifest {
	return &Manifest{
		RunID:       runID,
		DataRoot:    "Datas",
		GeneratedAt: at,
		Tables: []importer.TableImport{
			table("cfg", "TbItemWeapon", "cfg.ItemWeapon", "Weapon@cfg/Item.xlsx"),
			table("cfg", "TbItemGear", "cfg.ItemGear", "Helm|Gear@cfg/Item.xlsx", "Boots|Gear@cfg/Item.xlsx"),
		},
	}
}

// newTableService resolves csv files under a fresh data root.
func newTableService(t *testing.T) (*importer.Service, string) {
	t.Helper()
	settings, err := importer.DefaultConfig().Compile()
	require.NoError(t, err)

	root := t.TempDir()
	resolver := importer.NewResolver(settings, nil, nil, zap.NewNop())
	return importer.NewService(resolver, root, 0, zap.NewNop()), root
}

func writeCSV(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("id,name\n1,sword\n"), 0o644))
}

func writeRaw(root, rel, content string) error {
	return os.WriteFile(filepath.Join(root, filepath.FromSlash(rel)), []byte(content), 0o644)
}
