package manifest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"table-importer/feature/importer"

	"gorm.io/gorm"
)

// ErrRunNotFound is returned when a run ID is not in the history.
var ErrRunNotFound = errors.New("run not found")

// RunRecord is a stored discovery run.
type RunRecord struct {
	ID          string    `gorm:"primaryKey;size:36"`
	DataRoot    string    `gorm:"size:1024"`
	GeneratedAt time.Time `gorm:"index"`
	TableCount  int
	Tables      []TableRecord `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the gorm table name.
func (RunRecord) TableName() string {
	return "import_runs"
}

// TableRecord is one descriptor of a stored run.
type TableRecord struct {
	ID                 uint   `gorm:"primaryKey"`
	RunID              string `gorm:"size:36;index"`
	Position           int
	Namespace          string `gorm:"size:255"`
	Name               string `gorm:"size:255"`
	ValueType          string `gorm:"size:512"`
	Mode               string `gorm:"size:16"`
	Comment            string `gorm:"size:255"`
	ReadSchemaFromFile bool
	InputFiles         []string `gorm:"serializer:json"`
}

// TableName overrides the gorm table name.
func (TableRecord) TableName() string {
	return "import_tables"
}

// RunSummary is a history entry without its tables.
type RunSummary struct {
	ID          string    `json:"id"`
	DataRoot    string    `json:"data_root"`
	GeneratedAt time.Time `json:"generated_at"`
	TableCount  int       `json:"table_count"`
}

// Store keeps the discovery run history.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store on an open connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the history tables.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&RunRecord{}, &TableRecord{}); err != nil {
		return fmt.Errorf("failed to migrate history tables: %w", err)
	}
	return nil
}

// SaveRun stores a manifest and its tables in one transaction.
func (s *Store) SaveRun(ctx context.Context, m *Manifest) error {
	run := RunRecord{
		ID:          m.RunID,
		DataRoot:    m.DataRoot,
		GeneratedAt: m.GeneratedAt,
		TableCount:  len(m.Tables),
	}
	for i, t := range m.Tables {
		run.Tables = append(run.Tables, TableRecord{
			RunID:              m.RunID,
			Position:           i,
			Namespace:          t.Namespace,
			Name:               t.Name,
			ValueType:          t.ValueType,
			Mode:               string(t.Mode),
			Comment:            t.Comment,
			ReadSchemaFromFile: t.ReadSchemaFromFile,
			InputFiles:         t.InputFiles,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&run).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", m.RunID, err)
	}
	return nil
}

// LatestRuns returns up to limit runs, newest first.
func (s *Store) LatestRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	var runs []RunRecord
	err := s.db.WithContext(ctx).
		Order("generated_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	summaries := make([]RunSummary, 0, len(runs))
	for _, r := range runs {
		summaries = append(summaries, RunSummary{
			ID:          r.ID,
			DataRoot:    r.DataRoot,
			GeneratedAt: r.GeneratedAt,
			TableCount:  r.TableCount,
		})
	}
	return summaries, nil
}

// LoadRun loads a stored run with its tables in their original order.
func (s *Store) LoadRun(ctx context.Context, id string) (*Manifest, error) {
	var run RunRecord
	err := s.db.WithContext(ctx).
		Preload("Tables", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&run, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}

	m := &Manifest{
		RunID:       run.ID,
		DataRoot:    run.DataRoot,
		GeneratedAt: run.GeneratedAt,
		Tables:      make([]importer.TableImport, 0, len(run.Tables)),
	}
	for _, t := range run.Tables {
		inputs := t.InputFiles
		if inputs == nil {
			inputs = []string{}
		}
		m.Tables = append(m.Tables, importer.TableImport{
			Namespace:          t.Namespace,
			Name:               t.Name,
			ValueType:          t.ValueType,
			ReadSchemaFromFile: t.ReadSchemaFromFile,
			Mode:               importer.TableMode(t.Mode),
			Comment:            t.Comment,
			Groups:             []string{},
			InputFiles:         inputs,
		})
	}
	return m, nil
}
