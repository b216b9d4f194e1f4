package translate

// Config holds configuration for the translation service.
type Config struct {
	// APIKey is the Cloud Translation API key. When empty, application
	// default credentials are used.
	APIKey string `mapstructure:"api_key" default:""`
	// Endpoint overrides the service base URL.
	Endpoint string `mapstructure:"endpoint" default:""`
	// BatchSize is the maximum number of texts per request.
	BatchSize int `mapstructure:"batch_size" default:"100"`
	// TimeoutSeconds bounds each request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
