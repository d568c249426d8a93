package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string // dev | prod
	Addr string

	DBDSN string

	// CookieSecret signs the guest cart cookie.
	CookieSecret  []byte
	SecureCookies bool
	SessionTTL    time.Duration

	// ShopLoc is the pinned display/filter timezone for the whole shop.
	ShopLoc *time.Location

	RedisAddr string
	RedisDB   int
	CacheTTL  time.Duration

	SMTP SMTPConfig

	Storage StorageConfig
}

type SMTPConfig struct {
	Host          string
	Port          string
	User          string
	Pass          string
	From          string
	FromName      string
	TLSMode       string // "", "tls", "starttls"
	SkipVerifyTLS bool
}

type StorageConfig struct {
	Driver       string // local | s3
	LocalDir     string
	LocalURLBase string
	S3Region     string
	S3Bucket     string
	S3Prefix     string
	S3PublicBase string
}

// Load reads .env (missing file is fine, prod uses real env vars) and
// builds the typed config. An unknown SHOP_TZ falls back to UTC rather
// than failing startup.
func Load() *Config {
	_ = godotenv.Load()

	loc, err := time.LoadLocation(getEnv("SHOP_TZ", "Europe/Moscow"))
	if err != nil {
		loc = time.UTC
	}

	return &Config{
		Env:           getEnv("APP_ENV", "dev"),
		Addr:          getEnv("HTTP_ADDR", ":8080"),
		DBDSN:         getEnv("DB_DSN", ""),
		CookieSecret:  []byte(getEnv("COOKIE_SECRET", "dev-insecure-secret")),
		SecureCookies: getEnv("APP_ENV", "dev") == "prod",
		SessionTTL:    time.Duration(getEnvInt("SESSION_TTL_HOURS", 24*14)) * time.Hour,
		ShopLoc:       loc,
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      time.Duration(getEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second,
		SMTP: SMTPConfig{
			Host:          getEnv("SMTP_HOST", "localhost"),
			Port:          getEnv("SMTP_PORT", "1025"),
			User:          getEnv("SMTP_USER", ""),
			Pass:          getEnv("SMTP_PASS", ""),
			From:          getEnv("SMTP_FROM", "no-reply@volnasup.ru"),
			FromName:      getEnv("SMTP_FROM_NAME", "VolnaSUP"),
			TLSMode:       getEnv("SMTP_TLS_MODE", ""),
			SkipVerifyTLS: getEnvBool("SMTP_SKIP_VERIFY_TLS", false),
		},
		Storage: StorageConfig{
			Driver:       getEnv("STORAGE_DRIVER", "local"),
			LocalDir:     getEnv("LOCAL_UPLOAD_DIR", "./storage/uploads"),
			LocalURLBase: getEnv("LOCAL_UPLOAD_URL_PREFIX", "/uploads"),
			S3Region:     getEnv("S3_REGION", ""),
			S3Bucket:     getEnv("S3_BUCKET", ""),
			S3Prefix:     getEnv("S3_PREFIX", "uploads"),
			S3PublicBase: getEnv("S3_PUBLIC_BASE_URL", ""),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
