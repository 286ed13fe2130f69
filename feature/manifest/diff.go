package manifest

import (
	"fmt"
	"strings"

	"table-importer/core/reconcile"
	"table-importer/feature/importer"
)

// tableAdapter keys tables by qualified name and source document. Two
// documents in one directory may resolve to the same name and both count.
type tableAdapter struct{}

func (tableAdapter) Key(t importer.TableImport) string {
	if src := t.SourcePath(); src != "" {
		return t.FullName() + "@" + src
	}
	return t.FullName()
}

func (tableAdapter) Compare(prev, next importer.TableImport) []string {
	var mismatch []string
	if prev.ValueType != next.ValueType {
		mismatch = append(mismatch, fmt.Sprintf("value_type: %s -> %s", prev.ValueType, next.ValueType))
	}
	if prev.Mode != next.Mode {
		mismatch = append(mismatch, fmt.Sprintf("mode: %s -> %s", prev.Mode, next.Mode))
	}
	if p, n := strings.Join(prev.InputFiles, ","), strings.Join(next.InputFiles, ","); p != n {
		mismatch = append(mismatch, fmt.Sprintf("input_files: [%s] -> [%s]", p, n))
	}
	return mismatch
}

// Diff compares the tables of two manifests. A nil prev reports every table as added.
func Diff(prev, next *Manifest) []reconcile.Change {
	var prevTables, nextTables []importer.TableImport
	if prev != nil {
		prevTables = prev.Tables
	}
	if next != nil {
		nextTables = next.Tables
	}
	return reconcile.Diff(prevTables, nextTables, tableAdapter{})
}
