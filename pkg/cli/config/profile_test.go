package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/fintel-lab/pentarisk/pkg/cli/config"
	"github.com/fintel-lab/pentarisk/pkg/domain/types"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestLoadRiskProfile(t *testing.T) {
	path := writeProfile(t, `
[[category]]
category = "LIQUIDITY"
parameters = ["Deposit concentration"]

[[category.keyword]]
term = "Bank Run"
weight = 0.99
sentiment = "Negative"
`)

	profile, err := config.LoadRiskProfile(path)
	gt.NoError(t, err).Required()

	// Overridden category
	liquidity := profile.For(types.CategoryLiquidity)
	gt.Array(t, liquidity.Parameters).Equal([]string{"Deposit concentration"})
	gt.Array(t, liquidity.Keywords).Length(1)
	gt.Value(t, liquidity.Keywords[0].Term).Equal("Bank Run")

	// Untouched categories keep the defaults
	market := profile.For(types.CategoryMarket)
	gt.Array(t, market.Keywords).Length(5)
	gt.Array(t, profile.Categories).Length(len(types.Categories()))
}

func TestLoadRiskProfileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadRiskProfile(filepath.Join(t.TempDir(), "missing.toml"))
		gt.Error(t, err)
	})

	t.Run("invalid TOML", func(t *testing.T) {
		path := writeProfile(t, "not [ valid toml")
		_, err := config.LoadRiskProfile(path)
		gt.Error(t, err)
	})

	t.Run("unknown category", func(t *testing.T) {
		path := writeProfile(t, `
[[category]]
category = "WEATHER"
`)
		_, err := config.LoadRiskProfile(path)
		gt.Error(t, err)
	})

	t.Run("weight out of range", func(t *testing.T) {
		path := writeProfile(t, `
[[category]]
category = "MARKET"

[[category.keyword]]
term = "Rate Hike"
weight = 1.5
`)
		_, err := config.LoadRiskProfile(path)
		gt.Error(t, err)
	})
}

func TestProfileConfigureDefaults(t *testing.T) {
	var p config.Profile
	profile, err := p.Configure()
	gt.NoError(t, err).Required()
	gt.Array(t, profile.Categories).Length(len(types.Categories()))
}
