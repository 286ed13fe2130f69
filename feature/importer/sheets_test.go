package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSpreadsheet(t *testing.T) {
	for _, name := range []string{"Item.xlsx", "Item.xls", "Item.xlsm", "Item.csv", "Item.XLSX", "a/b/Item.Csv"} {
		assert.True(t, IsSpreadsheet(name), name)
	}
	for _, name := range []string{"Item.txt", "Item", "Item.xlsx.bak", "README.md"} {
		assert.False(t, IsSpreadsheet(name), name)
	}
}

func TestFileSheetReader(t *testing.T) {
	root := t.TempDir()
	reader := NewFileSheetReader("")

	t.Run("Workbook", func(t *testing.T) {
		path := writeWorkbook(t, root, "Item.xlsx", "Weapon", "Armor", "Monster|Boss")

		sheets, err := reader.OpenSheets(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"Weapon", "Armor", "Monster|Boss"}, sheets)
	})

	t.Run("MacroWorkbook", func(t *testing.T) {
		path := writeWorkbook(t, root, "Skill.xlsm", "Active", "Passive")

		sheets, err := reader.OpenSheets(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"Active", "Passive"}, sheets)
	})

	t.Run("LegacyWorkbook", func(t *testing.T) {
		sheets, err := reader.OpenSheets(filepath.Join("testdata", "Item.xls"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Weapon", "Armor"}, sheets)
	})

	t.Run("CorruptWorkbook", func(t *testing.T) {
		path := writeFile(t, root, "Broken.xlsx", "this is not a zip archive")

		_, err := reader.OpenSheets(path)
		assert.Error(t, err)
	})

	t.Run("CorruptLegacyWorkbook", func(t *testing.T) {
		path := writeFile(t, root, "Legacy.xls", "this is not a compound document")

		_, err := reader.OpenSheets(path)
		assert.Error(t, err)
	})

	t.Run("DelimitedUsesFileName", func(t *testing.T) {
		path := writeFile(t, root, "Drop.csv", "id,name\n1,sword\n")

		sheets, err := reader.OpenSheets(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"Drop"}, sheets)
	})

	t.Run("DelimitedConfiguredName", func(t *testing.T) {
		path := writeFile(t, root, "Loot.csv", "id\n1\n")

		sheets, err := NewFileSheetReader("Data").OpenSheets(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"Data"}, sheets)
	})

	t.Run("MalformedDelimited", func(t *testing.T) {
		path := writeFile(t, root, "Bad.csv", "id,name\n1,sw\"ord\n")

		_, err := reader.OpenSheets(path)
		assert.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := reader.OpenSheets(root + "/Missing.csv")
		assert.Error(t, err)
	})

	t.Run("UnsupportedExtension", func(t *testing.T) {
		_, err := reader.OpenSheets("Item.ods")
		assert.ErrorContains(t, err, "unsupported")
	})
}
