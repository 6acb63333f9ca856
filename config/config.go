package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageMongo  = "mongo"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	Storage      string `env:"STORAGE_BACKEND" envDefault:"memory"`
	MongoURI     string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017/"`
	MongoDB      string `env:"MONGO_DB" envDefault:"skinbox"`
	RedisAddr    string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPrefix  string `env:"REDIS_PREFIX" envDefault:"skinbox:"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	// Photo upload is disabled when the bucket is empty
	AWSRegion string `env:"AWS_REGION" envDefault:"us-east-1"`
	S3Bucket  string `env:"AWS_BUCKET_NAME"`

	// Order e-mails are skipped when the key is empty
	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	FromEmail      string `env:"FROM_EMAIL"`
	ManagerEmail   string `env:"MANAGER_EMAIL"`
	ManagerPhone   string `env:"WHATSAPP_MANAGER_PHONE" envDefault:"79000000000"`
	MarkOrdered    bool   `env:"ORDER_MARKS_BOX_ORDERED" envDefault:"false"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`
	AdminMark string        `env:"ADMIN_EMAIL_MARKER" envDefault:"admin"`

	RetryAttempts int           `env:"GEMINI_RETRY_ATTEMPTS" envDefault:"1"`
	RetryBackoff  time.Duration `env:"GEMINI_RETRY_BACKOFF" envDefault:"1s"`

	ImportBrowserFallback bool `env:"IMPORT_BROWSER_FALLBACK" envDefault:"false"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load loads .env (if present) and parses environment variables into Config.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage {
	case StorageMemory, StorageRedis, StorageMongo:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage)
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("GEMINI_RETRY_ATTEMPTS must be at least 1, got %d", c.RetryAttempts)
	}
	return nil
}
