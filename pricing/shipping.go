package pricing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Rules holds the shipping cost schedule, in cents. This flat
// base-plus-per-item schedule is the single canonical shipping policy for
// the storefront; the cart engine and the checkout session builder both
// compute from the same Rules value.
type Rules struct {
	BaseShippingCost      int64 `json:"baseShippingCost"`
	PerItemCost           int64 `json:"perItemCost"`
	FreeShippingThreshold int64 `json:"freeShippingThreshold"`
	ExpeditedShippingCost int64 `json:"expeditedShippingCost,omitempty"`
}

// DefaultRules returns the standard schedule: $8.99 base, $0.50 per item,
// free shipping at $75.00, expedited $19.99.
func DefaultRules() Rules {
	return Rules{
		BaseShippingCost:      899,
		PerItemCost:           50,
		FreeShippingThreshold: 7500,
		ExpeditedShippingCost: 1999,
	}
}

// LoadRules reads a shipping schedule from a JSON config file. An empty
// path returns the defaults. The engine is constructed once at application
// start and injected into its consumers; there is no package-level instance.
func LoadRules(configPath string) (Rules, error) {
	if configPath == "" {
		return DefaultRules(), nil
	}

	// Resolve config path
	if !filepath.IsAbs(configPath) {
		wd, err := os.Getwd()
		if err != nil {
			return Rules{}, fmt.Errorf("failed to get working directory: %w", err)
		}
		configPath = filepath.Join(wd, configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read shipping config: %w", err)
	}

	var rules Rules
	if err := json.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("failed to parse shipping config: %w", err)
	}

	if err := rules.Validate(); err != nil {
		return Rules{}, fmt.Errorf("invalid shipping config: %w", err)
	}

	return rules, nil
}

// Validate checks that the schedule is internally consistent
func (r Rules) Validate() error {
	if r.BaseShippingCost < 0 {
		return fmt.Errorf("baseShippingCost cannot be negative")
	}
	if r.PerItemCost < 0 {
		return fmt.Errorf("perItemCost cannot be negative")
	}
	if r.FreeShippingThreshold < 0 {
		return fmt.Errorf("freeShippingThreshold cannot be negative")
	}
	if r.ExpeditedShippingCost < 0 {
		return fmt.Errorf("expeditedShippingCost cannot be negative")
	}
	return nil
}
