package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// spreadsheetExts lists the accepted document extensions (lower case, no dot).
var spreadsheetExts = map[string]struct{}{
	"xlsx": {},
	"xls":  {},
	"xlsm": {},
	"csv":  {},
}

// IsSpreadsheet reports whether the path has an accepted spreadsheet extension.
func IsSpreadsheet(path string) bool {
	_, ok := spreadsheetExts[extOf(path)]
	return ok
}

func extOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// SheetReader lists the sheets of a spreadsheet document in document order.
// Implementations must release the document before returning.
type SheetReader interface {
	OpenSheets(path string) ([]string, error)
}

// FileSheetReader reads sheet names from local xlsx, xlsm, xls and csv files.
type FileSheetReader struct {
	// CSVSheetName is the sheet name reported for csv files. Empty means the
	// file name without extension.
	CSVSheetName string
}

// NewFileSheetReader creates a reader for local documents.
func NewFileSheetReader(csvSheetName string) *FileSheetReader {
	return &FileSheetReader{CSVSheetName: csvSheetName}
}

// OpenSheets dispatches on the file extension.
func (r *FileSheetReader) OpenSheets(path string) ([]string, error) {
	switch ext := extOf(path); ext {
	case "xlsx", "xlsm":
		return openWorkbook(path)
	case "xls":
		return openLegacyWorkbook(path)
	case "csv":
		return r.openDelimited(path)
	default:
		return nil, fmt.Errorf("unsupported spreadsheet extension %q", ext)
	}
}

func openWorkbook(path string) (names []string, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return f.GetSheetList(), nil
}

func openLegacyWorkbook(path string) (names []string, err error) {
	// The BIFF decoder panics on some truncated files.
	defer func() {
		if r := recover(); r != nil {
			names = nil
			err = fmt.Errorf("failed to decode xls: %v", r)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb, err := xls.OpenReader(f, "utf-8")
	if err != nil {
		return nil, err
	}
	if wb == nil {
		return nil, errors.New("failed to decode xls: no workbook stream")
	}

	for i := 0; i < wb.NumSheets(); i++ {
		if sheet := wb.GetSheet(i); sheet != nil {
			names = append(names, sheet.Name)
		}
	}
	return names, nil
}

func (r *FileSheetReader) openDelimited(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	for {
		if _, err := cr.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
	}

	name := r.CSVSheetName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return []string{name}, nil
}
