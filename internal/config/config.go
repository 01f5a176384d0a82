// Package config assembles the application's configuration from
// defaults, an optional .env file, environment variables, and CLI flags,
// in that precedence order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Browser
	Headless   bool
	ChromePath string
	UserAgent  string
	Proxy      string

	// Timeouts and pacing
	NavTimeout     time.Duration
	ElementTimeout time.Duration
	CardTimeout    time.Duration
	PageSettle     time.Duration
	PagePause      time.Duration
	PropertyPause  time.Duration
	ScrollPause    time.Duration

	// Budgets
	DetailAttempts  int
	MaxScrolls      int
	FailureBudget   int
	EmptyPageBudget int

	// API server
	APIAddr string

	// Export
	SheetName  string
	ExportPath string
}

// Load builds a Config by combining defaults, a .env file when present,
// environment variables, and CLI flags. Caller should pass the command so
// flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	// Missing .env is the normal case outside development.
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("Loaded environment from .env")
	}

	cfg := &Config{
		LogLevel:        DefaultLogLevel,
		JSONLog:         DefaultJSONLog,
		Headless:        DefaultHeadless,
		UserAgent:       DefaultUserAgent,
		NavTimeout:      DefaultNavTimeout,
		ElementTimeout:  DefaultElementTimeout,
		CardTimeout:     DefaultCardTimeout,
		PageSettle:      DefaultPageSettle,
		PagePause:       DefaultPagePause,
		PropertyPause:   DefaultPropertyPause,
		ScrollPause:     DefaultScrollPause,
		DetailAttempts:  DefaultDetailAttempts,
		MaxScrolls:      DefaultMaxScrolls,
		FailureBudget:   DefaultFailureBudget,
		EmptyPageBudget: DefaultEmptyPageBudget,
		APIAddr:         DefaultAPIAddr,
		SheetName:       DefaultSheetName,
		ExportPath:      DefaultExportPath,
	}

	// Override from environment variables
	if v := os.Getenv("BALISCRAPE_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("BALISCRAPE_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("BALISCRAPE_CHROME_PATH"); v != "" {
		cfg.ChromePath = v
	}
	if v := os.Getenv("BALISCRAPE_API_ADDR"); v != "" {
		cfg.APIAddr = v
	}
	if v := os.Getenv("BALISCRAPE_SHEET_NAME"); v != "" {
		cfg.SheetName = v
	}
	if v := os.Getenv("BALISCRAPE_EXPORT_PATH"); v != "" {
		cfg.ExportPath = v
	}
	if v := os.Getenv("BALISCRAPE_HEADLESS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Headless = b
		}
	}

	// Read CLI flags if provided
	if cmd != nil {
		if f := cmd.Flags().Lookup("user-agent"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.UserAgent = s
			}
		}
		if f := cmd.Flags().Lookup("proxy"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.Proxy = s
			}
		}
		if f := cmd.Flags().Lookup("chrome-path"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.ChromePath = s
			}
		}
		if f := cmd.Flags().Lookup("headless"); f != nil && f.Changed {
			cfg.Headless = f.Value.String() == "true"
		}
		if f := cmd.Flags().Lookup("timeout"); f != nil {
			if s := f.Value.String(); s != "" {
				if d, err := time.ParseDuration(s); err == nil {
					cfg.NavTimeout = d
				}
			}
		}
		if f := cmd.Flags().Lookup("attempts"); f != nil {
			if n, err := strconv.Atoi(f.Value.String()); err == nil && n > 0 {
				cfg.DetailAttempts = n
			}
		}
		if f := cmd.Flags().Lookup("addr"); f != nil {
			if s := f.Value.String(); s != "" {
				cfg.APIAddr = s
			}
		}
		if f := cmd.Flags().Lookup("json"); f != nil {
			if f.Value.String() == "true" {
				cfg.JSONLog = true
			}
		}
		if f := cmd.Flags().Lookup("verbose"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "debug"
			}
		}
		if f := cmd.Flags().Lookup("quiet"); f != nil {
			if f.Value.String() == "true" {
				cfg.LogLevel = "error"
			}
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
