package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/clientbridge-dev/clientbridge/internal/types"
)

// Config holds all runtime configuration. It is loaded once at startup and
// injected into the components that need it; nothing reads the environment
// at request time.
type Config struct {
	Port         string
	DatabaseURL  string
	JWTSecret    string
	CookieDomain string

	AllowedOrigins []string

	// Inquiry intake
	InquiryDedupWindow time.Duration

	// File uploads
	MaxUploadBytes int64
	UploadDir      string
	UploadBaseURL  string

	// Outbound mail relay
	MailRelayURL string
	MailFrom     string
	AdminEmail   string
}

const (
	defaultPort        = "3000"
	defaultDedupWindow = 30 * time.Second
	defaultMaxUpload   = 5 << 20 // 5 MiB for client-initiated uploads
	defaultUploadDir   = "uploads"
)

// Load reads configuration from the environment and applies defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:               fallback(os.Getenv("PORT"), defaultPort),
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:          strings.TrimSpace(os.Getenv("JWT_SECRET")),
		CookieDomain:       strings.TrimSpace(os.Getenv("DOMAIN")),
		AllowedOrigins:     types.MergeAllowedOrigins(os.Getenv("ALLOWED_ORIGINS")),
		InquiryDedupWindow: defaultDedupWindow,
		MaxUploadBytes:     defaultMaxUpload,
		UploadDir:          fallback(os.Getenv("UPLOAD_DIR"), defaultUploadDir),
		UploadBaseURL:      fallback(os.Getenv("UPLOAD_BASE_URL"), "/uploads"),
		MailRelayURL:       strings.TrimSpace(os.Getenv("MAIL_RELAY_URL")),
		MailFrom:           fallback(os.Getenv("MAIL_FROM"), "no-reply@clientbridge.dev"),
		AdminEmail:         strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
	}

	if secs := os.Getenv("INQUIRY_DEDUP_SECONDS"); secs != "" {
		if n, err := strconv.Atoi(secs); err == nil && n > 0 {
			cfg.InquiryDedupWindow = time.Duration(n) * time.Second
		}
	}

	if size := os.Getenv("MAX_UPLOAD_BYTES"); size != "" {
		if n, err := strconv.ParseInt(size, 10, 64); err == nil && n > 0 {
			cfg.MaxUploadBytes = n
		}
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}
