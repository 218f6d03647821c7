package sandbox

// Config is a configuration for the sandbox processor
type Config struct {
    HTTPAddr string `mapstructure:"http_addr" yaml:"http_addr"`
    // Path is where questions are posted.
    Path string `mapstructure:"path" yaml:"path"`
    // Site, Rang and Key are the merchant credentials questions must carry.
    Site string `mapstructure:"site" yaml:"site"`
    Rang string `mapstructure:"rang" yaml:"rang"`
    Key  string `mapstructure:"key" yaml:"key"`
    // OutageCode, when set, is returned for every question (failover drills).
    OutageCode string `mapstructure:"outage_code" yaml:"outage_code"`
    // PANHashKey peppers the PAN hashes kept for stored cards.
    PANHashKey string `mapstructure:"pan_hash_key" yaml:"pan_hash_key"`
}

func DefaultConfig() *Config {
    return &Config{
        HTTPAddr:   "localhost:9090",
        Path:       "/PPPS.php",
        Site:       "1999888",
        Rang:       "032",
        Key:        "1999888I",
        PANHashKey: "dev-secret-pepper",
    }
}
