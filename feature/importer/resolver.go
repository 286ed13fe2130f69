package importer

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"table-importer/core/utils"

	"go.uber.org/zap"
)

// Resolver turns the spreadsheets under a data root into table-import descriptors.
// It keeps no state between calls to Resolve.
type Resolver struct {
	settings *Settings
	walker   Walker
	sheets   SheetReader
	logger   *zap.Logger
}

// NewResolver creates a resolver. A nil walker or sheet reader falls back to the
// local filesystem implementations.
func NewResolver(settings *Settings, walker Walker, sheets SheetReader, logger *zap.Logger) *Resolver {
	if walker == nil {
		walker = DirWalker{}
	}
	if sheets == nil {
		sheets = NewFileSheetReader(settings.CSVSheetName)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		settings: settings,
		walker:   walker,
		sheets:   sheets,
		logger:   logger,
	}
}

// Resolve scans dataRoot and returns the descriptors of every discovered table,
// ordered by file discovery order and, within a file, by first appearance of the group.
// A *MalformedDocumentError aborts the run unless SkipMalformed is set.
func (r *Resolver) Resolve(ctx context.Context, dataRoot string) ([]TableImport, error) {
	files, err := r.walker.ListFiles(dataRoot)
	if err != nil {
		return nil, err
	}

	tables := []TableImport{}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("resolution of %s interrupted: %w", dataRoot, err)
		}

		if r.walker.IsIgnored(dataRoot, file) {
			r.logger.Info("Skipping ignored file", zap.String("file", file))
			continue
		}

		found, err := r.resolveFile(dataRoot, file)
		if err != nil {
			var malformed *MalformedDocumentError
			if r.settings.SkipMalformed && errors.As(err, &malformed) {
				r.logger.Warn("Skipping malformed spreadsheet", zap.String("file", malformed.Path), zap.Error(malformed.Err))
				continue
			}
			return nil, err
		}
		tables = append(tables, found...)
	}

	r.logger.Debug("Resolved tables", zap.String("data_root", dataRoot), zap.Int("files", len(files)), zap.Int("tables", len(tables)))
	return tables, nil
}

// resolveFile derives the descriptors contributed by a single document.
func (r *Resolver) resolveFile(dataRoot, file string) ([]TableImport, error) {
	if !IsSpreadsheet(file) {
		r.logger.Info("Skipping file", zap.String("file", file), zap.String("reason", "unsupported extension"))
		return nil, nil
	}

	baseName := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	rawID, ok := matchFull(r.settings.FilePattern, baseName)
	if !ok {
		r.logger.Info("Skipping file", zap.String("file", file), zap.String("reason", "name does not match file pattern"))
		return nil, nil
	}
	if rawID == "" {
		rawID = baseName
	}

	relPath, err := filepath.Rel(dataRoot, file)
	if err != nil {
		return nil, fmt.Errorf("failed to relativize %s: %w", file, err)
	}
	relPath = filepath.ToSlash(relPath)

	rawNamespace, rawName := utils.SplitNamespace(rawID)
	tableNamespace := utils.MakeFullName(namespaceFromPath(relPath), r.settings.TableNamespaceFormat.Format(rawNamespace))
	tableName := r.settings.TableNameFormat.Format(rawName)
	valueTypeBase := utils.MakeFullName(tableNamespace, r.settings.ValueTypeNameFormat.Format(rawName))

	sheetNames, err := r.sheets.OpenSheets(file)
	if err != nil {
		return nil, &MalformedDocumentError{Path: file, Err: err}
	}

	var order []string
	groups := make(map[string]*TableImport)
	for _, sheet := range sheetNames {
		override, ok := matchFull(r.settings.SheetPattern, sheet)
		if !ok {
			r.logger.Info("Skipping sheet", zap.String("file", relPath), zap.String("sheet", sheet), zap.String("reason", "name does not match sheet pattern"))
			continue
		}

		typeToken := utils.Capitalize(sheet)
		if override != "" {
			typeToken = utils.Capitalize(override)
		}

		key := tableName + typeToken
		table, exists := groups[key]
		if !exists {
			table = newAutoTable(tableNamespace, key, valueTypeBase+typeToken)
			groups[key] = table
			order = append(order, key)
		}
		ref := SheetRef(sheet, relPath)
		table.InputFiles = append(table.InputFiles, ref)
		r.logger.Info("Import table sheet", zap.String("table", table.FullName()), zap.String("input", ref))
	}

	tables := make([]TableImport, 0, len(order))
	for _, key := range order {
		tables = append(tables, *groups[key])
	}
	return tables, nil
}

// namespaceFromPath joins the directory segments of a slash-separated relative path with '.'.
func namespaceFromPath(relPath string) string {
	dir := path.Dir(relPath)
	if dir == "." || dir == "/" {
		return ""
	}
	return strings.ReplaceAll(strings.Trim(dir, "/"), "/", ".")
}
