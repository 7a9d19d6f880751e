package catalog

// Config holds configuration for the target catalog API.
type Config struct {
	// Endpoint is the base URL of the catalog API, e.g.
	// "https://repository.example.org/api".
	Endpoint string `mapstructure:"endpoint" default:"http://localhost/api"`
	// KeyIdentity is the API key identity part.
	KeyIdentity string `mapstructure:"key_identity" default:""`
	// KeyCredential is the API key credential part.
	KeyCredential string `mapstructure:"key_credential" default:""`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// PageSize is the page size used when listing vocabulary terms.
	PageSize int `mapstructure:"page_size" default:"500"`
}
