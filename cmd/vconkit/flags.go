package main

import (
	"strings"

	"github.com/davidahmann/vconkit/core/projectconfig"
)

// stringListFlag collects a repeatable string flag.
type stringListFlag []string

func (f *stringListFlag) String() string {
	return strings.Join(*f, ",")
}

func (f *stringListFlag) Set(value string) error {
	*f = append(*f, value)
	return nil
}

// loadProjectDefaults reads the project config; an explicit path must exist,
// the default path may be absent.
func loadProjectDefaults(configPath string) (projectconfig.Config, error) {
	trimmed := strings.TrimSpace(configPath)
	if trimmed == "" {
		return projectconfig.Load(projectconfig.DefaultPath, true)
	}
	return projectconfig.Load(trimmed, false)
}
