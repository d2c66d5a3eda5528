package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string

	JWTSecret string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	// FrontendURL is the base used when building password-reset links.
	FrontendURL string

	// StudentIDPrefix is the institution prefix of durable student IDs.
	StudentIDPrefix string

	// AdminEmail and AdminPassword form the bootstrap superuser credential.
	// It authenticates to the admin role without a backing record.
	AdminEmail    string
	AdminPassword string

	// PasswordEncoding selects how newly written credentials are stored:
	// "plain" or "bcrypt". Existing records may carry either encoding.
	PasswordEncoding string

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:    getEnvInt("REDIS_DB", 0),
		RedisPass:  os.Getenv("REDIS_PASSWORD"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		SMTPHost: getEnv("SMTP_HOST", "localhost"),
		SMTPPort: getEnvInt("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASSWORD"),
		MailFrom: getEnv("MAIL_FROM", "noreply@josmed.edu.ng"),

		FrontendURL:     getEnv("FRONTEND_URL", "https://medicalcareer.netlify.app"),
		StudentIDPrefix: getEnv("STUDENT_ID_PREFIX", "JMC"),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@josmed.edu.ng"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "adminpassword123"),

		PasswordEncoding: getEnv("PASSWORD_ENCODING", "plain"),

		SwaggerHost: os.Getenv("SWAGGER_HOST"),
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
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
