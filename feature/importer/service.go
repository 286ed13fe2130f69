package importer

import (
	"context"
	"time"

	"table-importer/core/reconcile"

	"go.uber.org/zap"
)

// Service exposes table discovery for one configured data root.
type Service struct {
	resolver *Resolver
	dataRoot string
	cache    *reconcile.Cache[[]TableImport]
	logger   *zap.Logger
}

// NewService creates a new importer service. cacheTTL controls how long Tables
// reuses a previous resolution.
func NewService(resolver *Resolver, dataRoot string, cacheTTL time.Duration, logger *zap.Logger) *Service {
	return &Service{
		resolver: resolver,
		dataRoot: dataRoot,
		cache:    reconcile.NewCache[[]TableImport](cacheTTL),
		logger:   logger,
	}
}

// DataRoot returns the scanned directory.
func (s *Service) DataRoot() string {
	return s.dataRoot
}

// Resolve scans the data root, bypassing the cache.
func (s *Service) Resolve(ctx context.Context) ([]TableImport, error) {
	return s.resolver.Resolve(ctx, s.dataRoot)
}

// Tables returns the discovered tables, sharing scans between concurrent callers.
func (s *Service) Tables(ctx context.Context) ([]TableImport, error) {
	return s.cache.GetOrBuild(ctx, s.dataRoot, s.Resolve)
}

// Invalidate forces the next Tables call to rescan.
func (s *Service) Invalidate() {
	s.cache.Invalidate(s.dataRoot)
}
