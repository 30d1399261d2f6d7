package config

import (
	"errors"
	"fmt"

	"github.com/ironsheep/quickstitch/internal/export"
	"github.com/ironsheep/quickstitch/internal/imaging"
	"github.com/ironsheep/quickstitch/internal/logging"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateInput(); err != nil {
		return err
	}
	if err := c.validateSplit(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if c.Workers.Count < 0 {
		return errors.New("workers.count must not be negative")
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		return fmt.Errorf("logging.format: %w", err)
	}
	return nil
}

func (c *Config) validateInput() error {
	if _, err := imaging.ParseSortMode(c.Input.Sort); err != nil {
		return fmt.Errorf("input.sort: %w", err)
	}
	if c.Input.Width < 0 {
		return errors.New("input.width must not be negative")
	}
	return nil
}

func (c *Config) validateSplit() error {
	if c.Split.Sensitivity < 0 || c.Split.Sensitivity > 255 {
		return fmt.Errorf("split.sensitivity must be between 0 and 255, got %d", c.Split.Sensitivity)
	}
	if err := c.SplitOptions().Validate(); err != nil {
		return fmt.Errorf("split: %w", err)
	}
	return nil
}

func (c *Config) validateOutput() error {
	if _, err := c.ExportFormat(); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if _, err := export.ParseColor(c.Output.CutColor); err != nil {
		return fmt.Errorf("output.cut_color: %w", err)
	}
	if _, err := export.ParseColor(c.Output.SkipColor); err != nil {
		return fmt.Errorf("output.skip_color: %w", err)
	}
	return nil
}
