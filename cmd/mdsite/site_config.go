package main

import (
	"errors"
	"fmt"

	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/hints"
)

// defaultConfigName is loaded when neither --config nor MDSITE_CONFIG is set
// and one of its search paths exists.
const defaultConfigName = "mdsite"

// loadSiteConfig resolves the effective configuration:
// CLI flags > env vars > config file > defaults.
func loadSiteConfig(common *commonFlags, sf *siteFlags, env *Environment) (*config.Config, *envConfig, error) {
	ec := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	name := common.config
	if name == "" {
		name = ec.ConfigPath
	}
	if name == "" {
		name = findDefaultConfig()
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(ec, cfg)
	mergeSiteFlags(sf, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, ec, nil
}

// findDefaultConfig returns the first existing search path of
// defaultConfigName, or "".
func findDefaultConfig() string {
	for _, p := range config.SearchPaths(defaultConfigName) {
		if fileutil.FileExists(p) {
			return p
		}
	}
	return ""
}
