package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T, root string, ttl time.Duration) (*fiber.App, *Service) {
	t.Helper()
	app := fiber.New()
	svc := NewService(newTestResolver(t, compileDefaults(t)), root, ttl, zap.NewNop())
	NewHandler(svc).RegisterRoutes(app)
	return app, svc
}

func getTables(t *testing.T, app *fiber.App, url string) (int, []TableImport) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		return resp.StatusCode, nil
	}
	var tables []TableImport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tables))
	return resp.StatusCode, tables
}

func TestHandleListTables(t *testing.T) {
	root := t.TempDir()
	writeWorkbook(t, root, "cfg/Item.xlsx", "Weapon", "Armor")
	app, _ := setupTestApp(t, root, 0)

	status, tables := getTables(t, app, "/tables")
	assert.Equal(t, fiber.StatusOK, status)
	require.Len(t, tables, 2)
	assert.Equal(t, "TbItemWeapon", tables[0].Name)
	assert.Equal(t, []string{"Weapon@cfg/Item.xlsx"}, tables[0].InputFiles)
}

func TestHandleListTablesCache(t *testing.T) {
	root := t.TempDir()
	writeWorkbook(t, root, "Item.xlsx", "Weapon")
	app, _ := setupTestApp(t, root, time.Hour)

	_, tables := getTables(t, app, "/tables")
	require.Len(t, tables, 1)

	writeWorkbook(t, root, "Monster.xlsx", "Boss")

	_, tables = getTables(t, app, "/tables")
	assert.Len(t, tables, 1, "cached result is reused")

	_, tables = getTables(t, app, "/tables?refresh=true")
	assert.Len(t, tables, 2)
}

func TestHandleListTablesErrors(t *testing.T) {
	t.Run("MalformedDocument", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "Item.xlsx", "garbage")
		app, _ := setupTestApp(t, root, 0)

		status, _ := getTables(t, app, "/tables")
		assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	})

	t.Run("MissingRoot", func(t *testing.T) {
		app, _ := setupTestApp(t, filepath.Join(t.TempDir(), "missing"), 0)

		status, _ := getTables(t, app, "/tables")
		assert.Equal(t, fiber.StatusInternalServerError, status)
	})
}

func TestStatusCode(t *testing.T) {
	cfgErr := &ConfigError{Option: "importer.file_pattern", Err: errors.New("bad")}
	malformed := &MalformedDocumentError{Path: "Item.xlsx", Err: errors.New("bad")}

	assert.Equal(t, fiber.StatusBadRequest, StatusCode(cfgErr))
	assert.Equal(t, fiber.StatusUnprocessableEntity, StatusCode(fmt.Errorf("resolve: %w", malformed)))
	assert.Equal(t, fiber.StatusInternalServerError, StatusCode(errors.New("boom")))
}

func TestFeature(t *testing.T) {
	root := t.TempDir()
	_, svc := setupTestApp(t, root, 0)

	f := NewFeature(svc)
	assert.Equal(t, "importer", f.Name())
	assert.True(t, f.IsEnabled())
	assert.False(t, NewFeature(nil).IsEnabled())

	app := fiber.New()
	require.NoError(t, f.Load(app))
	status, tables := getTables(t, app, "/tables")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, tables)
	assert.Equal(t, root, svc.DataRoot())
}
