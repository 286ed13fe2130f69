package importer

import "strings"

// TableMode is the storage mode of a generated table.
type TableMode string

const (
	// TableModeMap stores rows as keyed records.
	TableModeMap TableMode = "map"
	// TableModeList stores rows as an ordered list.
	TableModeList TableMode = "list"
	// TableModeOne stores a single record.
	TableModeOne TableMode = "one"
)

// AutoImportComment marks descriptors produced by discovery.
const AutoImportComment = "Import by auto"

// TableImport describes one logical table and the sheets supplying its rows.
type TableImport struct {
	Namespace          string    `json:"namespace" yaml:"namespace" toml:"namespace"`
	Name               string    `json:"name" yaml:"name" toml:"name"`
	Index              string    `json:"index" yaml:"index" toml:"index"`
	ValueType          string    `json:"value_type" yaml:"value_type" toml:"value_type"`
	ReadSchemaFromFile bool      `json:"read_schema_from_file" yaml:"read_schema_from_file" toml:"read_schema_from_file"`
	Mode               TableMode `json:"mode" yaml:"mode" toml:"mode"`
	Comment            string    `json:"comment" yaml:"comment" toml:"comment"`
	Groups             []string  `json:"groups" yaml:"groups" toml:"groups"`
	// InputFiles holds sheet references of the form <sheet>@<relative path>.
	InputFiles []string `json:"input_files" yaml:"input_files" toml:"input_files"`
	OutputFile string   `json:"output_file" yaml:"output_file" toml:"output_file"`
}

// FullName returns the namespace-qualified table name.
func (t TableImport) FullName() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// SourcePath returns the relative path of the document the table was read
// from, or an empty string when it has no input files.
func (t TableImport) SourcePath() string {
	if len(t.InputFiles) == 0 {
		return ""
	}
	ref := t.InputFiles[0]
	return ref[strings.LastIndex(ref, "@")+1:]
}

func newAutoTable(namespace, name, valueType string) *TableImport {
	return &TableImport{
		Namespace:          namespace,
		Name:               name,
		ValueType:          valueType,
		ReadSchemaFromFile: true,
		Mode:               TableModeMap,
		Comment:            AutoImportComment,
		Groups:             []string{},
	}
}

// SheetRef builds the reference the schema reader uses to locate a sheet.
func SheetRef(sheet, relPath string) string {
	return sheet + "@" + relPath
}
