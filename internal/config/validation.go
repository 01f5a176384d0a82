package config

import "fmt"

func validate(c *Config) error {
	if c.NavTimeout <= 0 {
		return fmt.Errorf("navigation timeout must be > 0")
	}
	if c.DetailAttempts <= 0 || c.DetailAttempts > MaxDetailAttempts {
		return fmt.Errorf("detail attempts must be between 1 and %d", MaxDetailAttempts)
	}
	if c.FailureBudget <= 0 {
		return fmt.Errorf("failure budget must be > 0")
	}
	if c.EmptyPageBudget <= 0 {
		return fmt.Errorf("empty page budget must be > 0")
	}
	if c.MaxScrolls <= 0 {
		return fmt.Errorf("max scrolls must be > 0")
	}
	if c.SheetName == "" {
		return fmt.Errorf("sheet name must not be empty")
	}
	return nil
}
