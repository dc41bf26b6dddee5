package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr string
	DataDir    string

	SMTPHost  string
	SMTPPort  string
	SMTPUser  string
	SMTPPass  string
	EmailFrom string

	RazorpayKeyID     string
	RazorpayKeySecret string

	// Kafka
	KafkaBrokers string
	KafkaTopic   string

	// Reminder sweep
	ReminderInterval  time.Duration
	ReminderWindowMin float64
	ReminderWindowMax float64
}

var AppConfig Config

func LoadConfig() {
	// Try loading .env from different locations
	envLocations := []string{
		".env",              // project root
		"config/.env",       // config subdirectory
		"../config/.env",    // one level up
		"../../config/.env", // two levels up
	}

	envLoaded := false
	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			envLoaded = true
			break
		}
	}

	if !envLoaded {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = Config{
		ServerAddr: getEnvWithDefault("SERVER_ADDR", ":8080"),
		DataDir:    getEnvWithDefault("DATA_DIR", "data"),

		SMTPHost:  getEnvWithDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:  getEnvWithDefault("SMTP_PORT", "587"),
		SMTPUser:  os.Getenv("SMTP_USER"),
		SMTPPass:  os.Getenv("SMTP_PASS"),
		EmailFrom: os.Getenv("EMAIL_FROM"),

		RazorpayKeyID:     os.Getenv("RazorpayKeyID"),
		RazorpayKeySecret: os.Getenv("RazorpayKeySecret"),

		// Kafka settings (comma-separated brokers)
		KafkaBrokers: getEnvWithDefault("KAFKA_BROKERS", "127.0.0.1:9092"),
		KafkaTopic:   getEnvWithDefault("KAFKA_TOPIC", "backoffice.events"),

		// The sweep interval must stay below the window width so every
		// qualifying booking is observed by at least one sweep.
		ReminderInterval:  getEnvDuration("REMINDER_INTERVAL", 60*time.Second),
		ReminderWindowMin: getEnvFloat("REMINDER_WINDOW_MIN", 29),
		ReminderWindowMax: getEnvFloat("REMINDER_WINDOW_MAX", 31),
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using default %s", key, defaultValue)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Invalid number for %s, using default %v", key, defaultValue)
	}
	return defaultValue
}
