package manifest

import (
	"time"

	"table-importer/feature/importer"

	"github.com/google/uuid"
)

// Manifest is the result of one discovery run.
type Manifest struct {
	RunID       string                 `json:"run_id" yaml:"run_id" toml:"run_id"`
	DataRoot    string                 `json:"data_root" yaml:"data_root" toml:"data_root"`
	GeneratedAt time.Time              `json:"generated_at" yaml:"generated_at" toml:"generated_at"`
	Tables      []importer.TableImport `json:"tables" yaml:"tables" toml:"tables"`
}

// New wraps discovered tables in a manifest with a fresh run ID.
func New(dataRoot string, tables []importer.TableImport) *Manifest {
	if tables == nil {
		tables = []importer.TableImport{}
	}
	return &Manifest{
		RunID:       uuid.NewString(),
		DataRoot:    dataRoot,
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Tables:      tables,
	}
}
