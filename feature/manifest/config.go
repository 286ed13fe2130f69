package manifest

// Config holds manifest output and publication settings.
type Config struct {
	// Format is the default encoding: json, yaml or toml.
	Format string `mapstructure:"format" default:"json"`
	// PublishFormats lists the encodings uploaded by Publish, comma separated.
	PublishFormats string `mapstructure:"publish_formats" default:"json"`
	// Prefix is the object key prefix for published manifests.
	Prefix string `mapstructure:"prefix" default:"manifests"`
	// CreateBucket creates the storage bucket when it is missing.
	CreateBucket bool `mapstructure:"create_bucket" default:"false"`
	// RetainRuns is the number of published runs kept in storage. Zero keeps all.
	RetainRuns int `mapstructure:"retain_runs" default:"0"`
	// HistoryLimit is the number of runs listed by the history command.
	HistoryLimit int `mapstructure:"history_limit" default:"10"`
}
