package importer

import (
	"fmt"
	"regexp"
	"time"

	"table-importer/core/utils"
)

// Default option values.
const (
	DefaultFilePattern          = `[A-Za-z0-9]+`
	DefaultSheetPattern         = `[A-Za-z0-9_]+(?:[|]([A-Za-z0-9_]+))?`
	DefaultTableNamespaceFormat = "{0}"
	DefaultTableNameFormat      = "Tb{0}"
	DefaultValueTypeNameFormat  = "{0}"
)

// Config holds the importer options as read from configuration.
type Config struct {
	// DataDir is the root directory scanned for spreadsheets.
	DataDir string `mapstructure:"data_dir" default:"data"`
	// FilePattern must fully match a file name (without extension).
	// An optional capture group selects the raw table identifier.
	FilePattern string `mapstructure:"file_pattern" default:"[A-Za-z0-9]+"`
	// SheetPattern must fully match a sheet name. Its optional capture group
	// overrides the group name of the sheet.
	SheetPattern string `mapstructure:"sheet_pattern" default:"[A-Za-z0-9_]+(?:[|]([A-Za-z0-9_]+))?"`
	// TableNamespaceFormat is applied to the namespace of the raw identifier.
	TableNamespaceFormat string `mapstructure:"table_namespace_format" default:"{0}"`
	// TableNameFormat is applied to the leaf of the raw identifier.
	TableNameFormat string `mapstructure:"table_name_format" default:"Tb{0}"`
	// ValueTypeNameFormat seeds the value type name from the leaf.
	ValueTypeNameFormat string `mapstructure:"value_type_name_format" default:"{0}"`
	// SkipMalformed logs and skips unreadable spreadsheets instead of failing the run.
	SkipMalformed bool `mapstructure:"skip_malformed" default:"false"`
	// CSVSheetName is the sheet name reported for csv files. Empty means the file name.
	CSVSheetName string `mapstructure:"csv_sheet_name" default:""`
	// CacheTTL is how long the HTTP API reuses a resolution. Zero disables caching.
	CacheTTL time.Duration `mapstructure:"cache_ttl" default:"0s"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		DataDir:              "data",
		FilePattern:          DefaultFilePattern,
		SheetPattern:         DefaultSheetPattern,
		TableNamespaceFormat: DefaultTableNamespaceFormat,
		TableNameFormat:      DefaultTableNameFormat,
		ValueTypeNameFormat:  DefaultValueTypeNameFormat,
	}
}

// Settings is the compiled form of Config consumed by the Resolver.
type Settings struct {
	FilePattern          *regexp.Regexp
	SheetPattern         *regexp.Regexp
	TableNamespaceFormat utils.Template
	TableNameFormat      utils.Template
	ValueTypeNameFormat  utils.Template
	SkipMalformed        bool
	CSVSheetName         string
}

// Compile validates every option and returns the compiled settings.
// Errors are *ConfigError naming the offending key.
func (c Config) Compile() (*Settings, error) {
	s := &Settings{
		SkipMalformed: c.SkipMalformed,
		CSVSheetName:  c.CSVSheetName,
	}

	var err error
	if s.FilePattern, err = compileFull("importer.file_pattern", c.FilePattern); err != nil {
		return nil, err
	}
	if s.SheetPattern, err = compileFull("importer.sheet_pattern", c.SheetPattern); err != nil {
		return nil, err
	}
	if n := s.SheetPattern.NumSubexp(); n > 1 {
		return nil, &ConfigError{
			Option: "importer.sheet_pattern",
			Err:    fmt.Errorf("pattern %q defines %d capture groups, at most one is allowed", c.SheetPattern, n),
		}
	}

	templates := []struct {
		key    string
		format string
		dst    *utils.Template
	}{
		{"importer.table_namespace_format", c.TableNamespaceFormat, &s.TableNamespaceFormat},
		{"importer.table_name_format", c.TableNameFormat, &s.TableNameFormat},
		{"importer.value_type_name_format", c.ValueTypeNameFormat, &s.ValueTypeNameFormat},
	}
	for _, tpl := range templates {
		parsed, err := utils.ParseTemplate(tpl.format)
		if err != nil {
			return nil, &ConfigError{Option: tpl.key, Err: err}
		}
		*tpl.dst = parsed
	}

	return s, nil
}

// compileFull anchors the pattern so it must match the whole input.
func compileFull(key, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, &ConfigError{Option: key, Err: fmt.Errorf("pattern is empty")}
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, &ConfigError{Option: key, Err: err}
	}
	return re, nil
}

// matchFull reports whether re matches s and returns the text of the first capture
// group, or "" when the pattern has no group or the group did not participate.
func matchFull(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatchIndex(s)
	if m == nil {
		return "", false
	}
	if len(m) >= 4 && m[2] >= 0 {
		return s[m[2]:m[3]], true
	}
	return "", true
}
