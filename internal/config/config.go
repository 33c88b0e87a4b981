package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
	Upload UploadConfig `mapstructure:"upload" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// CORSOrigins is the list of allowed CORS origins. Defaults to "*".
	CORSOrigins []string `mapstructure:"cors_origins" validate:"required,min=1"`

	// TLSCertFile and TLSKeyFile enable HTTPS when both point at readable
	// files. When either is missing the server falls back to plain HTTP.
	TLSCertFile string `mapstructure:"tls_cert_file"`
	TLSKeyFile  string `mapstructure:"tls_key_file"`
}

// LLMConfig contains all Gemini integration related settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`

	// ModelName selects the Gemini model used for generation.
	ModelName string `mapstructure:"model_name" validate:"required"`

	// Temperature controls sampling randomness for generation calls.
	Temperature float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`

	// MaxRetries is the number of additional attempts after a transient
	// API failure.
	MaxRetries int `mapstructure:"max_retries" validate:"gte=0,lte=10"`

	// RetryDelaySeconds is the base delay for exponential backoff.
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" validate:"gte=1,lte=60"`
}

// UploadConfig contains file-processing limits.
type UploadConfig struct {
	// MaxFileSizeMB caps uploaded file size. Enforced before any parsing.
	MaxFileSizeMB int `mapstructure:"max_file_size_mb" validate:"required,gt=0,lte=100"`

	// MaxFlashcards and MaxMCQs cap the per-request card counts.
	MaxFlashcards int `mapstructure:"max_flashcards" validate:"required,gt=0,lte=100"`
	MaxMCQs       int `mapstructure:"max_mcqs"       validate:"required,gt=0,lte=100"`
}

// MaxFileSizeBytes returns the upload size cap in bytes.
func (u UploadConfig) MaxFileSizeBytes() int64 {
	return int64(u.MaxFileSizeMB) * 1024 * 1024
}
