package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CLINIC_API_BASE_URL", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.ClinicAPIBaseURL != "http://localhost:5000" {
		t.Fatalf("expected default clinic API base URL, got %s", cfg.ClinicAPIBaseURL)
	}
	if cfg.ClinicAPITimeout != 15*time.Second {
		t.Fatalf("expected default clinic API timeout, got %s", cfg.ClinicAPITimeout)
	}
	if cfg.PatientsPerPage != 7 || cfg.AppointmentsPerPage != 7 || cfg.BucketPerPage != 10 {
		t.Fatalf("expected default page sizes 7/7/10, got %d/%d/%d",
			cfg.PatientsPerPage, cfg.AppointmentsPerPage, cfg.BucketPerPage)
	}
	if cfg.DefaultCountryCode != "+92" {
		t.Fatalf("expected default country code, got %s", cfg.DefaultCountryCode)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CLINIC_API_BASE_URL", "http://clinic-api:5000")
	t.Setenv("CLINIC_API_TIMEOUT", "5s")
	t.Setenv("CLINIC_NAME", "Smile Dental")
	t.Setenv("CURRENCY", "USD")
	t.Setenv("PATIENTS_PER_PAGE", "12")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env override, got %s", cfg.Env)
	}
	if cfg.ClinicAPIBaseURL != "http://clinic-api:5000" {
		t.Fatalf("expected base URL override, got %s", cfg.ClinicAPIBaseURL)
	}
	if cfg.ClinicAPITimeout != 5*time.Second {
		t.Fatalf("expected timeout override, got %s", cfg.ClinicAPITimeout)
	}
	if cfg.ClinicName != "Smile Dental" {
		t.Fatalf("expected clinic name override, got %s", cfg.ClinicName)
	}
	if cfg.Currency != "USD" {
		t.Fatalf("expected currency override, got %s", cfg.Currency)
	}
	if cfg.PatientsPerPage != 12 {
		t.Fatalf("expected patients per page override, got %d", cfg.PatientsPerPage)
	}
}
