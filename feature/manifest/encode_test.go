package manifest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":      FormatJSON,
		"json":  FormatJSON,
		"JSON":  FormatJSON,
		"yaml":  FormatYAML,
		" yml ": FormatYAML,
		"toml":  FormatTOML,
	}
	for name, want := range tests {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseFormat("xml")
	assert.ErrorContains(t, err, "unsupported manifest format")
}

func TestParseFormats(t *testing.T) {
	formats, err := ParseFormats("yaml, json,yml,,toml")
	require.NoError(t, err)
	assert.Equal(t, []Format{FormatYAML, FormatJSON, FormatTOML}, formats)

	formats, err = ParseFormats("")
	require.NoError(t, err)
	assert.Equal(t, []Format{FormatJSON}, formats)

	_, err = ParseFormats("json,csv")
	assert.Error(t, err)
}

func TestFormatMetadata(t *testing.T) {
	assert.Equal(t, "yaml", FormatYAML.Extension())
	assert.Equal(t, "application/json", FormatJSON.ContentType())
	assert.Equal(t, "application/yaml", FormatYAML.ContentType())
	assert.Equal(t, "application/toml", FormatTOML.ContentType())
}

func TestEncode(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	m := sampleManifest("run-1", at)

	markers := map[Format]string{
		FormatJSON: `"value_type": "cfg.ItemWeapon"`,
		FormatYAML: "value_type: cfg.ItemWeapon",
		FormatTOML: "value_type = ",
	}
	for f, marker := range markers {
		t.Run(string(f), func(t *testing.T) {
			data, err := Encode(m, f)
			require.NoError(t, err)
			assert.Contains(t, string(data), marker)

			decoded, err := Decode(data, f)
			require.NoError(t, err)
			assert.Equal(t, "run-1", decoded.RunID)
			assert.Equal(t, "Datas", decoded.DataRoot)
			assert.True(t, at.Equal(decoded.GeneratedAt))
			require.Len(t, decoded.Tables, 2)
			assert.Equal(t, "TbItemGear", decoded.Tables[1].Name)
			assert.Equal(t, []string{"Helm|Gear@cfg/Item.xlsx", "Boots|Gear@cfg/Item.xlsx"}, decoded.Tables[1].InputFiles)
		})
	}

	t.Run("Unsupported", func(t *testing.T) {
		_, err := Encode(m, Format("xml"))
		assert.Error(t, err)
		_, err = Decode([]byte("{}"), Format("xml"))
		assert.Error(t, err)
	})

	t.Run("InvalidInput", func(t *testing.T) {
		_, err := Decode([]byte("{"), FormatJSON)
		assert.ErrorContains(t, err, "failed to decode json manifest")
	})
}

func TestNew(t *testing.T) {
	m := New("Datas", nil)
	assert.NotEmpty(t, m.RunID)
	assert.NotNil(t, m.Tables)
	assert.Equal(t, time.UTC, m.GeneratedAt.Location())
	assert.Zero(t, m.GeneratedAt.Nanosecond())
	assert.NotEqual(t, m.RunID, New("Datas", nil).RunID)
}
