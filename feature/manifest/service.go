package manifest

import (
	"context"
	"errors"
	"fmt"

	"table-importer/core/reconcile"
	"table-importer/feature/importer"

	"go.uber.org/zap"
)

// ErrHistoryDisabled is returned by history operations without a database.
var ErrHistoryDisabled = errors.New("run history requires a database connection")

// Service builds manifests from discovered tables and records them.
type Service struct {
	tables    *importer.Service
	publisher *Publisher
	store     *Store
	cfg       Config
	logger    *zap.Logger
}

// NewService creates a manifest service. publisher and store are optional.
func NewService(tables *importer.Service, publisher *Publisher, store *Store, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		tables:    tables,
		publisher: publisher,
		store:     store,
		cfg:       cfg,
		logger:    logger,
	}
}

// RunOptions selects what Run does besides discovery.
type RunOptions struct {
	// Publish uploads the manifest in Formats to object storage.
	Publish bool
	Formats []Format
	// Save stores the run in the history database.
	Save bool
}

// RunReport is the outcome of Run.
type RunReport struct {
	Manifest      *Manifest          `json:"manifest"`
	PublishedKeys []string           `json:"published_keys,omitempty"`
	PrunedKeys    []string           `json:"pruned_keys,omitempty"`
	Saved         bool               `json:"saved"`
	PreviousRunID string             `json:"previous_run_id,omitempty"`
	Changes       []reconcile.Change `json:"changes,omitempty"`
}

// Build scans the data root and wraps the result in a manifest.
// When cached is set, a recent scan may be reused.
func (s *Service) Build(ctx context.Context, cached bool) (*Manifest, error) {
	var tables []importer.TableImport
	var err error
	if cached {
		tables, err = s.tables.Tables(ctx)
	} else {
		tables, err = s.tables.Resolve(ctx)
	}
	if err != nil {
		return nil, err
	}
	return New(s.tables.DataRoot(), tables), nil
}

// Run performs a fresh discovery and, as requested, diffs it against the last
// stored run, saves it and publishes it.
func (s *Service) Run(ctx context.Context, opts RunOptions) (*RunReport, error) {
	m, err := s.Build(ctx, false)
	if err != nil {
		return nil, err
	}
	report := &RunReport{Manifest: m}

	prev, err := s.previous(ctx, opts)
	if err != nil {
		return nil, err
	}
	if prev != nil {
		report.PreviousRunID = prev.RunID
		report.Changes = Diff(prev, m)
	}

	if opts.Save {
		if s.store == nil {
			return nil, ErrHistoryDisabled
		}
		if err := s.store.SaveRun(ctx, m); err != nil {
			return nil, err
		}
		report.Saved = true
	}

	if opts.Publish {
		if s.publisher == nil {
			return nil, fmt.Errorf("publishing requires a storage client")
		}
		keys, err := s.publisher.Publish(ctx, m, opts.Formats)
		if err != nil {
			return nil, err
		}
		report.PublishedKeys = keys

		pruned, err := s.publisher.Prune(ctx)
		if err != nil {
			return nil, err
		}
		report.PrunedKeys = pruned
	}

	s.logger.Info("Discovery run completed",
		zap.String("run_id", m.RunID),
		zap.Int("tables", len(m.Tables)),
		zap.Int("changes", len(report.Changes)),
		zap.Bool("saved", report.Saved),
		zap.Int("published", len(report.PublishedKeys)),
	)
	return report, nil
}

// History lists the most recent stored runs.
func (s *Service) History(ctx context.Context, limit int) ([]RunSummary, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = s.cfg.HistoryLimit
	}
	return s.store.LatestRuns(ctx, limit)
}

// DiffRuns compares two stored runs. Empty IDs select the two most recent runs.
func (s *Service) DiffRuns(ctx context.Context, fromID, toID string) ([]reconcile.Change, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	if fromID == "" || toID == "" {
		runs, err := s.store.LatestRuns(ctx, 2)
		if err != nil {
			return nil, err
		}
		if len(runs) < 2 {
			return nil, fmt.Errorf("need at least two stored runs to diff, found %d", len(runs))
		}
		fromID, toID = runs[1].ID, runs[0].ID
	}

	from, err := s.store.LoadRun(ctx, fromID)
	if err != nil {
		return nil, err
	}
	to, err := s.store.LoadRun(ctx, toID)
	if err != nil {
		return nil, err
	}
	return Diff(from, to), nil
}

// previous returns the manifest a new run is compared with: the newest stored
// run, or the latest published manifest when there is no history database.
func (s *Service) previous(ctx context.Context, opts RunOptions) (*Manifest, error) {
	if s.store != nil {
		return s.latestStored(ctx)
	}
	if s.publisher != nil && opts.Publish {
		f := FormatJSON
		if len(opts.Formats) > 0 {
			f = opts.Formats[0]
		}
		return s.publisher.Latest(ctx, f)
	}
	return nil, nil
}

func (s *Service) latestStored(ctx context.Context) (*Manifest, error) {
	runs, err := s.store.LatestRuns(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return s.store.LoadRun(ctx, runs[0].ID)
}
