package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/fintel-lab/pentarisk/pkg/domain/model"
	"github.com/fintel-lab/pentarisk/pkg/domain/types"
)

// ProfileConfig is the TOML schema for a risk research profile file
type ProfileConfig struct {
	Categories []ProfileCategory `toml:"category"`
}

// ProfileCategory overrides the research profile of one risk category
type ProfileCategory struct {
	Category   string           `toml:"category"`
	Parameters []string         `toml:"parameters"`
	Keywords   []ProfileKeyword `toml:"keyword"`
}

// ProfileKeyword is a weighted risk signal term
type ProfileKeyword struct {
	Term      string  `toml:"term"`
	Weight    float64 `toml:"weight"`
	Sentiment string  `toml:"sentiment"`
}

// ToDomain converts the TOML representation to the domain profile
func (p *ProfileConfig) ToDomain() *model.RiskProfile {
	profile := &model.RiskProfile{}
	for _, cat := range p.Categories {
		cp := model.CategoryProfile{
			Category:   types.RiskCategory(cat.Category),
			Parameters: cat.Parameters,
		}
		for _, kw := range cat.Keywords {
			cp.Keywords = append(cp.Keywords, model.Keyword{
				Term:      kw.Term,
				Weight:    kw.Weight,
				Sentiment: kw.Sentiment,
			})
		}
		profile.Categories = append(profile.Categories, cp)
	}
	return profile
}

// LoadRiskProfile reads a TOML profile file, validates it, and merges it
// onto the built-in defaults
func LoadRiskProfile(path string) (*model.RiskProfile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(ErrProfileNotFound, err.Error(), goerr.V("path", path))
	}

	var cfg ProfileConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML profile", goerr.V("path", path))
	}

	profile := cfg.ToDomain()
	if err := profile.Validate(); err != nil {
		return nil, goerr.Wrap(err, "profile validation failed", goerr.V("path", path))
	}

	return profile.Merge(model.DefaultRiskProfile()), nil
}

// Profile holds the CLI flag for the optional risk profile file
type Profile struct {
	path string
}

// Flags returns CLI flags for profile configuration
func (p *Profile) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "risk-profile",
			Usage:       "Path to a TOML risk research profile (empty uses built-in defaults)",
			Sources:     cli.EnvVars("PENTARISK_RISK_PROFILE"),
			Destination: &p.path,
		},
	}
}

// Path returns the configured profile path
func (p *Profile) Path() string {
	return p.path
}

// Configure loads the profile file, or the defaults when no path is set
func (p *Profile) Configure() (*model.RiskProfile, error) {
	if p.path == "" {
		return model.DefaultRiskProfile(), nil
	}
	return LoadRiskProfile(p.path)
}
