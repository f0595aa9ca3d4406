package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Server configuration
	Server struct {
		Port string `env:"SERVER_PORT" envDefault:"5260"`
	}

	// Database configuration
	Database struct {
		Path string `env:"DATABASE_PATH" envDefault:"database/auction.db"`
	}

	// BatchScoring configuration
	BatchScoring struct {
		// Number of properties fetched and scored per batch
		BatchSize int `env:"SCORE_BATCH_SIZE" envDefault:"100"`

		// Pause between batches in milliseconds, a self-imposed rate
		// limit against the source database
		BatchPauseMillis int `env:"SCORE_BATCH_PAUSE_MS" envDefault:"100"`

		// Number of concurrent write workers
		WorkerCount int `env:"SCORE_WORKER_COUNT" envDefault:"2"`

		// Maximum number of retries for failed batch writes
		MaxRetries int `env:"SCORE_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"SCORE_RETRY_DELAY" envDefault:"5"`
	}

	// Validation scheduler configuration
	Validation struct {
		// Interval between scheduled validation runs in minutes
		RunIntervalMinutes int `env:"VALIDATION_INTERVAL_MIN" envDefault:"360"`

		// Interval between performance monitoring checks in minutes
		MonitorIntervalMinutes int `env:"MONITOR_INTERVAL_MIN" envDefault:"60"`

		// Number of properties sampled per scheduled validation run
		SampleSize int `env:"VALIDATION_SAMPLE_SIZE" envDefault:"50"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
