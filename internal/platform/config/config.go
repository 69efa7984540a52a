package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Scheduler configuration. The scan interval drives the due scanner tick;
	// worker count bounds in-tick concurrency; the claim lease bounds how long
	// an abandoned claim can block an obligation; the execution timeout caps
	// one obligation's end-to-end processing.
	SchedulerEnabled          bool
	SchedulerScanInterval     time.Duration
	SchedulerWorkerCount      int
	SchedulerClaimLease       time.Duration
	SchedulerExecutionTimeout time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "centsible-app")
	viper.SetDefault("SCHEDULER_ENABLED", true)
	viper.SetDefault("SCHEDULER_SCAN_INTERVAL", "1m")
	viper.SetDefault("SCHEDULER_WORKER_COUNT", 4)
	viper.SetDefault("SCHEDULER_CLAIM_LEASE", "5m")
	viper.SetDefault("SCHEDULER_EXECUTION_TIMEOUT", "30s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.SchedulerEnabled = viper.GetBool("SCHEDULER_ENABLED")
	cfg.SchedulerScanInterval = parseDurationOr("SCHEDULER_SCAN_INTERVAL", time.Minute)
	cfg.SchedulerClaimLease = parseDurationOr("SCHEDULER_CLAIM_LEASE", 5*time.Minute)
	cfg.SchedulerExecutionTimeout = parseDurationOr("SCHEDULER_EXECUTION_TIMEOUT", 30*time.Second)

	cfg.SchedulerWorkerCount = viper.GetInt("SCHEDULER_WORKER_COUNT")
	if cfg.SchedulerWorkerCount < 1 {
		log.Printf("Warning: SCHEDULER_WORKER_COUNT must be positive, got %d. Defaulting to 4.\n", cfg.SchedulerWorkerCount)
		cfg.SchedulerWorkerCount = 4
	}

	// The lease must outlive a single execution attempt or a slow worker's
	// claim could expire mid-flight and let a second scan in.
	if cfg.SchedulerClaimLease <= cfg.SchedulerExecutionTimeout {
		log.Printf("Warning: SCHEDULER_CLAIM_LEASE (%s) should exceed SCHEDULER_EXECUTION_TIMEOUT (%s); raising lease.\n",
			cfg.SchedulerClaimLease, cfg.SchedulerExecutionTimeout)
		cfg.SchedulerClaimLease = 2 * cfg.SchedulerExecutionTimeout
	}

	return cfg, nil
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		return fallback
	}
	return d
}
