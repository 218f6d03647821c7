package directplus

import "time"

// Endpoints are the primary and backup URLs of both platforms.
type Endpoints struct {
	TestURL       string `mapstructure:"test_url" yaml:"test_url"`
	TestBackupURL string `mapstructure:"test_backup_url" yaml:"test_backup_url"`
	LiveURL       string `mapstructure:"live_url" yaml:"live_url"`
	LiveBackupURL string `mapstructure:"live_backup_url" yaml:"live_backup_url"`
}

func (e Endpoints) urls(test bool) (primary, backup string) {
	if test {
		return e.TestURL, e.TestBackupURL
	}
	return e.LiveURL, e.LiveBackupURL
}

// Config is a configuration for the gateway
type Config struct {
	// Login is the site number (7 digits) followed by the rank.
	Login    string `mapstructure:"login" yaml:"login"`
	Password string `mapstructure:"password" yaml:"password"`
	// Test selects the pre-production platform.
	Test      bool      `mapstructure:"test" yaml:"test"`
	Endpoints Endpoints `mapstructure:"endpoints" yaml:"endpoints"`
	// DefaultCurrency applies when an operation has no currency.
	DefaultCurrency string `mapstructure:"default_currency" yaml:"default_currency"`
	// VerifyAmount is the authorization amount, in minor units, used by Verify.
	VerifyAmount int64 `mapstructure:"verify_amount" yaml:"verify_amount"`
	// Timeout bounds each POST of the default transport.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

func DefaultConfig() *Config {
	return &Config{
		Test: true,
		Endpoints: Endpoints{
			TestURL:       "https://preprod-ppps.paybox.com/PPPS.php",
			TestBackupURL: "https://preprod-ppps.paybox.com/PPPS.php",
			LiveURL:       "https://ppps.paybox.com/PPPS.php",
			LiveBackupURL: "https://ppps1.paybox.com/PPPS.php",
		},
		DefaultCurrency: "EUR",
		VerifyAmount:    100,
		Timeout:         30 * time.Second,
	}
}
