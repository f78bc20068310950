package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()
	assert.Equal(t, int64(899), rules.BaseShippingCost)
	assert.Equal(t, int64(50), rules.PerItemCost)
	assert.Equal(t, int64(7500), rules.FreeShippingThreshold)
	assert.Equal(t, int64(1999), rules.ExpeditedShippingCost)
	assert.NoError(t, rules.Validate())
}

func TestLoadRulesEmptyPath(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), rules)
}

func TestLoadRulesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shipping.json")
	payload := `{"baseShippingCost":500,"perItemCost":25,"freeShippingThreshold":10000,"expeditedShippingCost":1500}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, int64(500), rules.BaseShippingCost)
	assert.Equal(t, int64(25), rules.PerItemCost)
	assert.Equal(t, int64(10000), rules.FreeShippingThreshold)
	assert.Equal(t, int64(1500), rules.ExpeditedShippingCost)
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadRulesInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shipping.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	_, err := LoadRules(path)
	assert.Error(t, err)
}

func TestLoadRulesRejectsNegativeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shipping.json")
	payload := `{"baseShippingCost":-1,"perItemCost":25,"freeShippingThreshold":10000}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

	_, err := LoadRules(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Rules{}.Validate())
	assert.Error(t, Rules{PerItemCost: -1}.Validate())
	assert.Error(t, Rules{FreeShippingThreshold: -1}.Validate())
	assert.Error(t, Rules{ExpeditedShippingCost: -1}.Validate())
}
