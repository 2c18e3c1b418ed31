package extension

// Config holds the Books extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.books" or "books" keys).
type Config struct {
	// DisableMigrate prevents auto-migration and seeding on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// DataFile is the path of the JSON data file. When set and no store
	// was provided programmatically, the extension opens a file-backed
	// store at this path.
	DataFile string `json:"data_file" mapstructure:"data_file" yaml:"data_file"`

	// UndoDepth is how many undo points are retained (default: 5).
	UndoDepth int `json:"undo_depth" mapstructure:"undo_depth" yaml:"undo_depth"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UndoDepth: 5,
	}
}
