package manifest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"table-importer/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Publisher uploads manifests to object storage.
type Publisher struct {
	client       storage.Client
	bucket       string
	region       string
	prefix       string
	createBucket bool
	retainRuns   int
	logger       *zap.Logger
}

// NewPublisher creates a publisher for the given bucket.
func NewPublisher(client storage.Client, storageCfg storage.Config, cfg Config, logger *zap.Logger) *Publisher {
	return &Publisher{
		client:       client,
		bucket:       storageCfg.Bucket,
		region:       storageCfg.Region,
		prefix:       cfg.Prefix,
		createBucket: cfg.CreateBucket,
		retainRuns:   cfg.RetainRuns,
		logger:       logger,
	}
}

// RunKey returns the object key of a run's manifest.
func (p *Publisher) RunKey(runID string, f Format) string {
	return path.Join(p.prefix, runID+"."+f.Extension())
}

// LatestKey returns the object key always pointing at the newest manifest.
func (p *Publisher) LatestKey(f Format) string {
	return path.Join(p.prefix, "latest."+f.Extension())
}

// Publish uploads the manifest in every format, both under its run key and the
// latest key. It returns the uploaded keys in a stable order.
func (p *Publisher) Publish(ctx context.Context, m *Manifest, formats []Format) ([]string, error) {
	if err := storage.EnsureBucket(ctx, p.client, p.bucket, p.region, p.createBucket); err != nil {
		return nil, err
	}

	if len(formats) == 0 {
		formats = []Format{FormatJSON}
	}

	keys := make([]string, 2*len(formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		data, err := Encode(m, f)
		if err != nil {
			return nil, err
		}
		keys[2*i] = p.RunKey(m.RunID, f)
		keys[2*i+1] = p.LatestKey(f)

		for _, key := range keys[2*i : 2*i+2] {
			contentType := f.ContentType()
			g.Go(func() error {
				return storage.PutBytes(gctx, p.client, p.bucket, key, data, contentType)
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to publish manifest %s: %w", m.RunID, err)
	}

	p.logger.Info("Manifest published",
		zap.String("bucket", p.bucket),
		zap.String("run_id", m.RunID),
		zap.Strings("keys", keys),
	)
	return keys, nil
}

// Latest downloads the newest published manifest. It returns nil without error
// when nothing has been published yet.
func (p *Publisher) Latest(ctx context.Context, f Format) (*Manifest, error) {
	key := p.LatestKey(f)
	obj, err := p.client.GetObject(ctx, p.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return Decode(data, f)
}

// Prune removes published run manifests beyond the newest retained runs. A
// retention of zero keeps everything. Only <run id>.<format> objects directly
// under the prefix are considered, so latest.* and foreign objects survive.
func (p *Publisher) Prune(ctx context.Context) ([]string, error) {
	if p.retainRuns <= 0 {
		return nil, nil
	}
	if strings.Trim(p.prefix, "/") == "" {
		return nil, errors.New("refusing to prune published manifests without a key prefix")
	}
	prefix := strings.TrimSuffix(p.prefix, "/") + "/"

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runs := make(map[string]time.Time)
	objects := make(map[string][]string)
	for obj := range p.client.ListObjects(ctx, p.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list published manifests: %w", obj.Err)
		}
		runID, ok := runKeyID(strings.TrimPrefix(obj.Key, prefix))
		if !ok {
			continue
		}
		if obj.LastModified.After(runs[runID]) {
			runs[runID] = obj.LastModified
		}
		objects[runID] = append(objects[runID], obj.Key)
	}
	if len(runs) <= p.retainRuns {
		return nil, nil
	}

	ids := make([]string, 0, len(runs))
	for id := range runs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if !runs[ids[i]].Equal(runs[ids[j]]) {
			return runs[ids[i]].After(runs[ids[j]])
		}
		return ids[i] < ids[j]
	})

	var removed []string
	for _, id := range ids[p.retainRuns:] {
		removed = append(removed, objects[id]...)
	}
	sort.Strings(removed)

	toDelete := make(chan minio.ObjectInfo, len(removed))
	for _, key := range removed {
		toDelete <- minio.ObjectInfo{Key: key}
	}
	close(toDelete)

	var removeErr error
	for rerr := range p.client.RemoveObjects(ctx, p.bucket, toDelete, minio.RemoveObjectsOptions{}) {
		if removeErr == nil {
			removeErr = fmt.Errorf("failed to remove %s: %w", rerr.ObjectName, rerr.Err)
		}
	}
	if removeErr != nil {
		return nil, removeErr
	}

	p.logger.Info("Pruned published manifests", zap.Int("runs", len(ids)-p.retainRuns), zap.Int("objects", len(removed)))
	return removed, nil
}

// runKeyID extracts the run ID from a key relative to the publish prefix. It
// reports false for nested keys, unknown extensions and names that are not
// canonical run IDs.
func runKeyID(name string) (string, bool) {
	if strings.Contains(name, "/") {
		return "", false
	}
	ext := path.Ext(name)
	switch Format(strings.TrimPrefix(ext, ".")) {
	case FormatJSON, FormatYAML, FormatTOML:
	default:
		return "", false
	}
	runID := strings.TrimSuffix(name, ext)
	if id, err := uuid.Parse(runID); err != nil || id.String() != runID {
		return "", false
	}
	return runID, true
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return true
	}
	return false
}
