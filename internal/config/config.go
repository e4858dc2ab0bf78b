package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Clinic API (the remote backend that owns all persistence)
	ClinicAPIBaseURL string
	ClinicAPITimeout time.Duration

	// Clinic identity shown in the shell and on invoices
	ClinicName    string
	ClinicTagline string
	ClinicContact string
	ClinicAddress string
	Currency      string

	// Phone entry defaults
	DefaultCountryCode string

	// List rendering
	PatientsPerPage     int
	AppointmentsPerPage int
	BucketPerPage       int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		ClinicAPIBaseURL: getEnv("CLINIC_API_BASE_URL", "http://localhost:5000"),
		ClinicAPITimeout: getEnvAsDuration("CLINIC_API_TIMEOUT", 15*time.Second),

		ClinicName:    getEnv("CLINIC_NAME", "GIK Dental and Aesthetic Care"),
		ClinicTagline: getEnv("CLINIC_TAGLINE", "Excellence in Dental & Aesthetic Care"),
		ClinicContact: getEnv("CLINIC_CONTACT", "+92 123 456789"),
		ClinicAddress: getEnv("CLINIC_ADDRESS", "123 Main Street, City"),
		Currency:      getEnv("CURRENCY", "PKR"),

		DefaultCountryCode: getEnv("DEFAULT_COUNTRY_CODE", "+92"),

		PatientsPerPage:     getEnvAsInt("PATIENTS_PER_PAGE", 7),
		AppointmentsPerPage: getEnvAsInt("APPOINTMENTS_PER_PAGE", 7),
		BucketPerPage:       getEnvAsInt("BUCKET_PER_PAGE", 10),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
