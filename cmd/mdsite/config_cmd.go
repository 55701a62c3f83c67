package main

import (
	"fmt"
)

// runConfig prints the effective configuration as YAML.
func runConfig(args []string, env *Environment) error {
	common, sf, err := parseConfigFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, _, err := loadSiteConfig(common, sf, env)
	if err != nil {
		return err
	}

	out, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(out)
	return err
}
