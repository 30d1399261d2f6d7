package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.Input.Sort = strings.ToLower(strings.TrimSpace(c.Input.Sort))
	if c.Input.Sort == "" {
		c.Input.Sort = defaultSort
	}

	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = defaultFormat
	}
	c.Output.CutColor = strings.TrimSpace(c.Output.CutColor)
	if c.Output.CutColor == "" {
		c.Output.CutColor = defaultCutColor
	}
	c.Output.SkipColor = strings.TrimSpace(c.Output.SkipColor)
	if c.Output.SkipColor == "" {
		c.Output.SkipColor = defaultSkipColor
	}

	if strings.TrimSpace(c.Output.Dir) == "" {
		c.Output.Dir = defaultOutputDir
	}
	var err error
	if c.Output.Dir, err = expandPath(c.Output.Dir); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}

	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
