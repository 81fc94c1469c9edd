package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port string

	// Document assembly
	OutputDir    string
	TemplateFile string
	TemplateDir  string // optional explicit search root, tried first

	// Preparer defaults applied when the form leaves them blank
	PreparerName  string
	PreparerEmail string
}

func Load() Config {
	return Config{
		Port: envOr("PORT", "8080"),

		OutputDir:    envOr("OUTPUT_DIR", "output"),
		TemplateFile: envOr("TEMPLATE_FILE", "original_template.docx"),
		TemplateDir:  os.Getenv("TEMPLATE_DIR"),

		PreparerName:  envOr("PREPARER_NAME", "Kevin Fuller"),
		PreparerEmail: envOr("PREPARER_EMAIL", "k.fuller@avatarmsp.com"),
	}
}

func (c Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR must not be empty")
	}
	if c.TemplateFile == "" {
		return fmt.Errorf("TEMPLATE_FILE must not be empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
