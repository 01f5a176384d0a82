package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel  = "info"
	DefaultJSONLog   = false
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	DefaultHeadless = true

	DefaultNavTimeout     = 30 * time.Second
	DefaultElementTimeout = 15 * time.Second
	DefaultCardTimeout    = 15 * time.Second

	DefaultPageSettle    = 3 * time.Second
	DefaultPagePause     = 3 * time.Second
	DefaultPropertyPause = 3 * time.Second
	DefaultScrollPause   = 2 * time.Second

	DefaultDetailAttempts  = 3
	DefaultMaxScrolls      = 100
	DefaultFailureBudget   = 3
	DefaultEmptyPageBudget = 2
	MaxDetailAttempts      = 10

	DefaultAPIAddr    = ":8080"
	DefaultSheetName  = "Bali_Exception"
	DefaultExportPath = "bali_properties.xlsx"
)
