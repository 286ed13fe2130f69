package importer

import "fmt"

// MalformedDocumentError reports a file that passed the name filters but could not
// be read as a spreadsheet.
type MalformedDocumentError struct {
	Path string
	Err  error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed spreadsheet %s: %v", e.Path, e.Err)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// ConfigError reports an invalid importer option.
type ConfigError struct {
	// Option is the configuration key, e.g. "importer.sheet_pattern".
	Option string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid option %s: %v", e.Option, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
