package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PromptOverrides replaces parts of the built-in prompts. Empty fields keep the default.
type PromptOverrides struct {
	// System is the system message for chat and claude modes.
	System string
	// Editorial lists extra constraints appended to web search input.
	Editorial []string
}

// PromptFile is the on-disk shape of NEWS_PROMPT_CONFIG.
//
//	prompts:
//	  system: "You are a news desk..."
//	  editorial:
//	    - "Prefer local outlets"
//	location:
//	  country: NZ
//	  city: Wellington
//	  region: Wellington
type PromptFile struct {
	Prompts struct {
		System    string   `yaml:"system"`
		Editorial []string `yaml:"editorial"`
	} `yaml:"prompts"`
	Location LocationConfig `yaml:"location"`
}

// LoadPromptFile reads and parses a prompt override file.
// The path comes from the operator's environment, not from request input.
func LoadPromptFile(path string) (*PromptFile, error) {
	// #nosec G304 -- path is provided by trusted source (environment), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt config file: %w", err)
	}

	var file PromptFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse prompt config: %w", err)
	}

	for i, rule := range file.Prompts.Editorial {
		if rule == "" {
			return nil, fmt.Errorf("prompt config validation failed: editorial rule %d is empty", i)
		}
	}

	return &file, nil
}

// apply copies non-empty values from the file onto cfg.
func (f *PromptFile) apply(cfg *NewsConfig) {
	if f.Prompts.System != "" {
		cfg.Prompts.System = f.Prompts.System
	}
	if len(f.Prompts.Editorial) > 0 {
		cfg.Prompts.Editorial = append([]string(nil), f.Prompts.Editorial...)
	}
	if f.Location.Country != "" {
		cfg.Location.Country = f.Location.Country
	}
	if f.Location.City != "" {
		cfg.Location.City = f.Location.City
	}
	if f.Location.Region != "" {
		cfg.Location.Region = f.Location.Region
	}
}
