package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// ResellerConfig holds the reseller-account settings that used to be
// hard-coded constants: the account id, the delegated admin identity and the
// service-account credentials path, plus report and sync tuning.
type ResellerConfig struct {
	Google GoogleSettings `toml:"google"`
	Report ReportSettings `toml:"report"`
	Sync   SyncSettings   `toml:"sync"`
}

// GoogleSettings contains the delegated-identity client configuration.
type GoogleSettings struct {
	AccountID       string `toml:"account_id"`       // channel account, e.g. accounts/C0123abc
	AdminSubject    string `toml:"admin_subject"`    // delegated reseller admin, e.g. admin@reseller.example
	CredentialsFile string `toml:"credentials_file"` // service-account JSON key path
}

// ReportSettings contains profitability report output settings.
type ReportSettings struct {
	Bucket         string `toml:"bucket"`
	URLExpiryHours int    `toml:"url_expiry_hours"`
}

// SyncSettings contains contact sync tuning.
type SyncSettings struct {
	Tags            []string `toml:"tags"`
	ScheduleEnabled bool     `toml:"schedule_enabled"`
	IntervalHours   int      `toml:"interval_hours"`
}

// LoadResellerConfig loads configuration from a TOML file
func LoadResellerConfig(filename string) (*ResellerConfig, error) {
	config := &ResellerConfig{}
	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if config.Report.Bucket == "" {
		config.Report.Bucket = "reports"
	}
	if config.Report.URLExpiryHours <= 0 {
		config.Report.URLExpiryHours = 24
	}
	if len(config.Sync.Tags) == 0 {
		config.Sync.Tags = []string{"Reseller Console", "Google Workspace"}
	}
	if config.Sync.IntervalHours <= 0 {
		config.Sync.IntervalHours = 24
	}
	return config, nil
}
