// Package reconcile compares keyed snapshots and caches expensive snapshot builds.
//
// # Diff
//
// Diff takes two slices of entities and an Adapter that knows how to key and compare
// them. It reports every key that was added, removed or changed between the two,
// sorted by key for deterministic output.
//
// # Cache
//
// Cache stores the result of a build function per key for a TTL. Concurrent callers
// asking for the same key while a build is running share that build (singleflight),
// so a burst of requests triggers a single directory scan.
//
// # Usage Example
//
//	changes := reconcile.Diff(prev.Tables, next.Tables, tableAdapter{})
//
//	cache := reconcile.NewCache[[]importer.TableImport](time.Minute)
//	tables, err := cache.GetOrBuild(ctx, dataRoot, resolve)
package reconcile
