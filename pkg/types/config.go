package types

import "time"

// CorpusConfig selects the publication corpus.
type CorpusConfig struct {
	// Path is a YAML corpus file. Empty uses the corpus compiled into the binary.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// StatsConfig holds settings for the statistics aggregator.
type StatsConfig struct {
	// TopCategories is the length of the top-categories list (default 3).
	TopCategories int `json:"top_categories" yaml:"top_categories" mapstructure:"top_categories"`

	// TopKeywords is the length of the top-keywords list (default 5).
	TopKeywords int `json:"top_keywords" yaml:"top_keywords" mapstructure:"top_keywords"`
}

// AssistantConfig holds settings for the canned question-answering panel.
type AssistantConfig struct {
	// ResponseDelay is the artificial latency before an answer is shown (default 1.5s).
	// It only applies to the presentation wrapper, never to the matcher.
	ResponseDelay time.Duration `json:"response_delay" yaml:"response_delay" mapstructure:"response_delay"`
}

// IndexConfig holds settings for the SQLite mirror of the corpus.
type IndexConfig struct {
	// Dir is the directory holding explorer.db and the export files.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// ServeConfig holds settings for the HTTP API.
type ServeConfig struct {
	// Addr is the listen address (default "127.0.0.1:8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// ShutdownTimeout bounds graceful shutdown (default 5s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// LogConfig selects the structured logger used by long-running commands.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is text or json (default text).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// ExplorerConfig groups all component configurations.
type ExplorerConfig struct {
	Corpus    CorpusConfig    `json:"corpus" yaml:"corpus" mapstructure:"corpus"`
	Stats     StatsConfig     `json:"stats" yaml:"stats" mapstructure:"stats"`
	Assistant AssistantConfig `json:"assistant" yaml:"assistant" mapstructure:"assistant"`
	Index     IndexConfig     `json:"index" yaml:"index" mapstructure:"index"`
	Serve     ServeConfig     `json:"serve" yaml:"serve" mapstructure:"serve"`
	Log       LogConfig       `json:"log" yaml:"log" mapstructure:"log"`
}
