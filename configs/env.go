package configs

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var loadEnv sync.Once

// env loads .env once and falls back to the process environment; a missing
// .env file is fine in deployed environments.
func env(key string) string {
	loadEnv.Do(func() {
		_ = godotenv.Load()
	})
	return os.Getenv(key)
}

func envDefault(key, fallback string) string {
	if v := env(key); v != "" {
		return v
	}
	return fallback
}

func EnvMongoURI() string {
	return envDefault("MONGOURI", "mongodb://localhost:27017")
}

func EnvDatabaseName() string {
	return envDefault("MONGO_DATABASE", "nearmart")
}

func EnvServerPort() string {
	return envDefault("PORT", "8080")
}

func EnvJWTSecret() string {
	return env("JWT_SECRET")
}

func EnvRazorpayKeyId() string {
	return env("RAZORPAY_KEY_ID")
}

func EnvRazorpayKeySecret() string {
	return env("RAZORPAY_KEY_SECRET")
}

func EnvRazorpayWebhookSecret() string {
	return env("RAZORPAY_WEBHOOK_SECRET")
}

func EnvGoogleMapsAPIKey() string {
	return env("GOOGLE_MAPS_API_KEY")
}

func EnvSMTPHost() string {
	return envDefault("SMTP_HOST", "smtp.gmail.com")
}

func EnvSMTPPort() string {
	return envDefault("SMTP_PORT", "587")
}

func EnvSMTPUser() string {
	return env("SMTP_USER")
}

func EnvSMTPPassword() string {
	return env("SMTP_PASSWORD")
}
