// Package utils provides the naming helpers shared by the importer and the manifest
// features: splitting dotted identifiers into namespace and leaf, joining them back,
// locale-independent capitalization and the "{0}" style format templates used by the
// table naming options.
package utils
