package source

// Config holds configuration for the source library API.
type Config struct {
	// Endpoint is the base URL of the reference-management API.
	Endpoint string `mapstructure:"endpoint" default:"https://api.zotero.org"`
	// LibraryType is the kind of library to read (user, group).
	LibraryType string `mapstructure:"library_type" default:"user"`
	// LibraryID is the numeric id of the library.
	LibraryID int `mapstructure:"library_id" default:"0"`
	// APIKey is the bearer credential; required for file enclosures.
	APIKey string `mapstructure:"api_key" default:""`
	// TimeoutSeconds is the per-request timeout. The remote API allows
	// up to 30 seconds, 20 leaves headroom on both sides.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"20"`
	// ChunkSize is the number of item keys per bulk request. The server
	// caps bulk requests at 50 keys.
	ChunkSize int `mapstructure:"chunk_size" default:"50"`
}

const (
	LibraryTypeUser  = "user"
	LibraryTypeGroup = "group"
)

// IsValidLibraryType checks if the configured library type is valid.
func (c Config) IsValidLibraryType() bool {
	switch c.LibraryType {
	case LibraryTypeUser, LibraryTypeGroup:
		return true
	default:
		return false
	}
}
