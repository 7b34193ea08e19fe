package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config là toàn bộ cấu hình đọc từ môi trường (và file .env nếu có)
type Config struct {
	Env           string
	Port          string
	StorageDriver string
	DatabaseDSN   string

	JWTSecret    string
	SecureCookie bool

	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayBaseURL   string
	GatewayTimeout    time.Duration
	OpTimeout         time.Duration

	RedisAddr     string
	RedisUser     string
	RedisPassword string
	CacheTTL      time.Duration

	CloudinaryURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	RabbitMQURL     string
	OrphanSweepSpec string
	CORSOrigins     []string

	LogLevel  string
	LogFormat string
	LogDir    string
}

// LoadEnv nạp file .env; thiếu file không phải lỗi
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func Load() (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Env:           strings.ToLower(getEnv("ENV", "dev")),
		Port:          getEnv("PORT", "8083"),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StoragePostgres)),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		SecureCookie: getBool("SECURE_COOKIE", true),

		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		RazorpayBaseURL:   os.Getenv("RAZORPAY_API_BASE"),
		GatewayTimeout:    getDuration("GATEWAY_TIMEOUT", 10*time.Second),
		OpTimeout:         getDuration("OP_TIMEOUT", 10*time.Second),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisUser:     os.Getenv("REDIS_USER"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CacheTTL:      getDuration("CACHE_TTL", 10*time.Minute),

		CloudinaryURL:       os.Getenv("CLOUDINARY_URL"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),

		RabbitMQURL:     os.Getenv("RABBITMQ_URL"),
		OrphanSweepSpec: getEnv("ORPHAN_SWEEP_SPEC", "0 * * * *"),
		CORSOrigins:     splitList(os.Getenv("CORS_ORIGINS")),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		LogDir:    os.Getenv("LOG_DIR"),
	}

	if cfg.StorageDriver == StoragePostgres {
		dsn, err := databaseDSN(cfg.Env)
		if err != nil {
			return nil, err
		}
		cfg.DatabaseDSN = dsn
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.RazorpayKeySecret == "" {
		return fmt.Errorf("RAZORPAY_KEY_SECRET is required")
	}
	return nil
}

// ConnectCloudinary trả về nil khi chưa cấu hình Cloudinary
func ConnectCloudinary(cfg *Config) (*cloudinary.Cloudinary, error) {
	switch {
	case cfg.CloudinaryURL != "":
		return cloudinary.NewFromURL(cfg.CloudinaryURL)
	case cfg.CloudinaryCloudName != "":
		return cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	default:
		return nil, nil
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
