package config

import (
	"os"
	"strings"

	"codeberg.org/mutker/psumon/internal/errors"
	"codeberg.org/mutker/psumon/internal/history"
	"codeberg.org/mutker/psumon/internal/psu"
	"codeberg.org/mutker/psumon/internal/transport"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configName = "psumon"
	configType = "toml"
	configPath = "/etc"
	envPrefix  = "PSUMON"

	// PSUMON_CONFIG points at an explicit config file and overrides the
	// search path.
	configFileEnv = "PSUMON_CONFIG"

	DefaultInterval = 2
)

type Config struct {
	Interval int  `mapstructure:"interval"`
	Debug    bool `mapstructure:"debug"`
	Verbose  bool `mapstructure:"verbose"`

	Device     string `mapstructure:"device"`
	VendorID   uint16 `mapstructure:"vendor_id"`
	ProductID  uint16 `mapstructure:"product_id"`
	SingleRail bool   `mapstructure:"single_rail"`

	History   bool   `mapstructure:"history"`
	HistoryDB string `mapstructure:"history_db"`

	VoltageChannels     int `mapstructure:"voltage_channels"`
	CurrentChannels     int `mapstructure:"current_channels"`
	PowerChannels       int `mapstructure:"power_channels"`
	TemperatureChannels int `mapstructure:"temperature_channels"`
	FanChannels         int `mapstructure:"fan_channels"`
	MinFrameLen         int `mapstructure:"min_frame_len"`
	MaxFrameLen         int `mapstructure:"max_frame_len"`
}

func Load() (*Config, error) {
	errFactory := errors.New()

	v := viper.New()
	setDefaults(v)

	// Flags override file and environment values.
	fs := flag.NewFlagSet(configName, flag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Int("interval", DefaultInterval, "Seconds between status reports")
	fs.Bool("debug", false, "Enable debugging mode")
	fs.Bool("verbose", false, "Enable verbose logging")
	fs.String("device", "", "Explicit hidraw device path")
	fs.Bool("single-rail", false, "Label the ganged 12V rail of single-rail units")
	fs.Bool("history", false, "Record readings to the history database")
	fs.String("history-db", "", "Path to the history database")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	// Flag names use dashes, config keys underscores.
	bindings := map[string]string{
		"interval":    "interval",
		"debug":       "debug",
		"verbose":     "verbose",
		"device":      "device",
		"single_rail": "single-rail",
		"history":     "history",
		"history_db":  "history-db",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if explicit := os.Getenv(configFileEnv); explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	sensor := psu.DefaultConfig()
	hist := history.DefaultConfig()

	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("vendor_id", transport.DefaultVendorID)
	v.SetDefault("product_id", transport.DefaultProductID)
	v.SetDefault("history_db", hist.DBPath)
	v.SetDefault("voltage_channels", sensor.VoltageChannels)
	v.SetDefault("current_channels", sensor.CurrentChannels)
	v.SetDefault("power_channels", sensor.PowerChannels)
	v.SetDefault("temperature_channels", sensor.TemperatureChannels)
	v.SetDefault("fan_channels", sensor.FanChannels)
	v.SetDefault("min_frame_len", sensor.MinFrameLen)
	v.SetDefault("max_frame_len", sensor.MaxFrameLen)
}

func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval < 1 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.Interval)
	}

	return c.Sensor().Validate()
}

// Sensor returns the decoder configuration slice of the loaded config.
func (c *Config) Sensor() psu.Config {
	return psu.Config{
		VoltageChannels:     c.VoltageChannels,
		CurrentChannels:     c.CurrentChannels,
		PowerChannels:       c.PowerChannels,
		TemperatureChannels: c.TemperatureChannels,
		FanChannels:         c.FanChannels,
		MinFrameLen:         c.MinFrameLen,
		MaxFrameLen:         c.MaxFrameLen,
		SingleRail:          c.SingleRail,
	}
}

// Transport returns the HID device selection slice of the loaded config.
func (c *Config) Transport() transport.Config {
	return transport.Config{
		VendorID:  c.VendorID,
		ProductID: c.ProductID,
		Path:      c.Device,
	}
}

// HistoryStore returns the readings persistence slice of the loaded config.
func (c *Config) HistoryStore() history.Config {
	cfg := history.DefaultConfig()
	cfg.DBPath = c.HistoryDB

	return cfg
}
