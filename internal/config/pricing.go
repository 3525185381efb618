package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PricingBounds constrains the values an admin may set on each derived
// pricing dimension.
type PricingBounds struct {
	BasePriceMin          float64 `mapstructure:"basePriceMin"`
	MultiplierMin         float64 `mapstructure:"multiplierMin"`
	MultiplierMax         float64 `mapstructure:"multiplierMax"`
	SurfacePriceMin       float64 `mapstructure:"surfacePriceMin"`
	AdvantageReductionMax float64 `mapstructure:"advantageReductionMax"`
}

func DefaultPricingBounds() PricingBounds {
	return PricingBounds{
		BasePriceMin:          0,
		MultiplierMin:         0.5,
		MultiplierMax:         3.0,
		SurfacePriceMin:       0,
		AdvantageReductionMax: 100,
	}
}

// PricingBoundsHolder exposes the current bounds and hot-reloads them when
// the config file changes.
type PricingBoundsHolder struct {
	current atomic.Value // holds PricingBounds
}

func NewPricingBoundsHolder() (*PricingBoundsHolder, error) {
	v := viper.New()

	v.SetConfigName("pricing")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/agrilink")
	v.AddConfigPath(".")

	v.SetEnvPrefix("AGRILINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultPricingBounds()
		v.SetDefault("pricing.basePriceMin", defaults.BasePriceMin)
		v.SetDefault("pricing.multiplierMin", defaults.MultiplierMin)
		v.SetDefault("pricing.multiplierMax", defaults.MultiplierMax)
		v.SetDefault("pricing.surfacePriceMin", defaults.SurfacePriceMin)
		v.SetDefault("pricing.advantageReductionMax", defaults.AdvantageReductionMax)
	}

	var bounds PricingBounds
	if err := v.UnmarshalKey("pricing", &bounds); err != nil {
		return nil, err
	}
	if err := validatePricingBounds(bounds); err != nil {
		return nil, err
	}

	holder := &PricingBoundsHolder{}
	holder.current.Store(bounds)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PricingBounds
		if err := v.UnmarshalKey("pricing", &updated); err != nil {
			log.Printf("[pricing-config] reload failed: %v", err)
			return
		}
		if err := validatePricingBounds(updated); err != nil {
			log.Printf("[pricing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[pricing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *PricingBoundsHolder) Get() PricingBounds {
	return h.current.Load().(PricingBounds)
}

func validatePricingBounds(bounds PricingBounds) error {
	if bounds.MultiplierMin <= 0 {
		return errors.New("pricing.multiplierMin must be positive")
	}
	if bounds.MultiplierMax < bounds.MultiplierMin {
		return errors.New("pricing.multiplierMax must be >= pricing.multiplierMin")
	}
	if bounds.AdvantageReductionMax <= 0 || bounds.AdvantageReductionMax > 100 {
		return errors.New("pricing.advantageReductionMax must be in (0, 100]")
	}
	return nil
}
