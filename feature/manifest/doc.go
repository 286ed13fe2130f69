// Package manifest packages discovery results for the rest of the pipeline.
//
// A Manifest is one discovery run: an ID, the scanned data root, a timestamp and
// the ordered table descriptors. The package encodes manifests as JSON, YAML or
// TOML, publishes them to object storage, keeps a run history in the database and
// diffs two runs.
//
// # Components
//
//   - Encode: manifest serialization (json, yaml, toml).
//   - Publisher: uploads <prefix>/<run id>.<ext> and <prefix>/latest.<ext>,
//     reads the latest back and prunes runs beyond manifest.retain_runs.
//   - Store: gorm-backed run history (SaveRun, LatestRuns, LoadRun).
//   - Diff: added, removed and changed tables between two runs.
//   - Service / Handler / Feature: HTTP exposure (GET /manifest, GET /manifest/history).
package manifest
