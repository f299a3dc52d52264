package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// CommissionConfig holds the platform-wide default commission rates.
// Per-provider overrides take precedence; these apply when a provider
// has no override set.
type CommissionConfig struct {
	VetCommissionDa           int64 `mapstructure:"vetCommissionDa"`
	DaycareHourlyCommissionDa int64 `mapstructure:"daycareHourlyCommissionDa"`
	DaycareDailyCommissionDa  int64 `mapstructure:"daycareDailyCommissionDa"`
	PetshopCommissionPercent  int64 `mapstructure:"petshopCommissionPercent"`
}

func DefaultCommissionConfig() CommissionConfig {
	return CommissionConfig{
		VetCommissionDa:           100,
		DaycareHourlyCommissionDa: 10,
		DaycareDailyCommissionDa:  100,
		PetshopCommissionPercent:  5,
	}
}

// CommissionHolder exposes the current commission defaults and swaps
// them atomically on config reload.
type CommissionHolder struct {
	current atomic.Value // holds CommissionConfig
}

func NewCommissionHolder() (*CommissionHolder, error) {
	v := viper.New()

	v.SetConfigName("commission")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/fennec/config") // Volume-mounted config
	v.AddConfigPath("/etc/fennec")            // System config
	v.AddConfigPath(".")                      // Current directory (dev mode)

	v.SetEnvPrefix("FENNEC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// if config file not found, use defaults
		defaults := DefaultCommissionConfig()
		v.SetDefault("commission.vetCommissionDa", defaults.VetCommissionDa)
		v.SetDefault("commission.daycareHourlyCommissionDa", defaults.DaycareHourlyCommissionDa)
		v.SetDefault("commission.daycareDailyCommissionDa", defaults.DaycareDailyCommissionDa)
		v.SetDefault("commission.petshopCommissionPercent", defaults.PetshopCommissionPercent)
	}

	var cfg CommissionConfig
	if err := v.UnmarshalKey("commission", &cfg); err != nil {
		return nil, err
	}
	if err := validateCommissionConfig(cfg); err != nil {
		return nil, err
	}

	holder := &CommissionHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated CommissionConfig
		if err := v.UnmarshalKey("commission", &updated); err != nil {
			log.Printf("[commission-config] reload failed: %v", err)
			return
		}
		if err := validateCommissionConfig(updated); err != nil {
			log.Printf("[commission-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[commission-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *CommissionHolder) Get() CommissionConfig {
	return h.current.Load().(CommissionConfig)
}

// NewStaticCommissionHolder returns a holder pinned to the given config.
// Used by tests and tools that must not touch the filesystem.
func NewStaticCommissionHolder(cfg CommissionConfig) *CommissionHolder {
	holder := &CommissionHolder{}
	holder.current.Store(cfg)
	return holder
}

func validateCommissionConfig(cfg CommissionConfig) error {
	if cfg.VetCommissionDa < 0 || cfg.DaycareHourlyCommissionDa < 0 || cfg.DaycareDailyCommissionDa < 0 {
		return errors.New("commission rates cannot be negative")
	}
	if cfg.PetshopCommissionPercent < 0 || cfg.PetshopCommissionPercent > 100 {
		return errors.New("commission.petshopCommissionPercent must be within [0,100]")
	}
	return nil
}
