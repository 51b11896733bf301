package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	AppName      string `env:"AUDIO_APP_NAME" envDefault:"audio-service"`
	AppEnv       string `env:"AUDIO_APP_ENV" envDefault:"local"`
	HTTPHost     string `env:"AUDIO_HTTP_HOST" envDefault:"0.0.0.0"`
	HTTPPort     string `env:"AUDIO_HTTP_PORT" envDefault:"8000"`
	HTTPBasePath string `env:"AUDIO_HTTP_BASE_PATH" envDefault:""`

	// DatabaseURL wins when set; the discrete fields below are the fallback.
	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"AUDIO_DB_HOST" envDefault:"localhost"`
	DBPort      string `env:"AUDIO_DB_PORT" envDefault:"5432"`
	DBUser      string `env:"AUDIO_DB_USER" envDefault:"app"`
	DBPassword  string `env:"AUDIO_DB_PASSWORD" envDefault:"app_password"`
	DBName      string `env:"AUDIO_DB_NAME" envDefault:"audiodb"`
	DBSSLMode   string `env:"AUDIO_DB_SSLMODE" envDefault:"disable"`

	SecretKey                string `env:"SECRET_KEY"`
	Algorithm                string `env:"ALGORITHM" envDefault:"HS256"`
	JWTPrivateKey            string `env:"AUDIO_JWT_PRIVATE_KEY"`
	JWTPublicKey             string `env:"AUDIO_JWT_PUBLIC_KEY"`
	JWTIssuer                string `env:"AUDIO_JWT_ISSUER" envDefault:"audio-service"`
	JWTAudience              string `env:"AUDIO_JWT_AUDIENCE" envDefault:"frontend"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"30"`

	YandexClientID     string `env:"YANDEX_CLIENT_ID"`
	YandexClientSecret string `env:"YANDEX_CLIENT_SECRET"`
	YandexRedirectURI  string `env:"YANDEX_REDIRECT_URI"`

	SuperuserEmail string `env:"SUPERUSER_EMAIL" envDefault:""`
	AudioFilesDir  string `env:"AUDIO_FILES_DIR" envDefault:"audio_files"`

	NATSURL                  string `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	NATSVerifySubject        string `env:"NATS_SUBJECT_VERIFY_JWT" envDefault:"audio.verifyJWT"`
	NATSUserCreatedSubject   string `env:"NATS_SUBJECT_USER_CREATED" envDefault:"audio.user-created"`
	NATSAudioUploadedSubject string `env:"NATS_SUBJECT_AUDIO_UPLOADED" envDefault:"audio.file-uploaded"`
}

func (c *Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}
