package config

import "fmt"

// migrationStep upgrades a config by exactly one schema version.
type migrationStep func(*Config)

// migrationSteps[i] upgrades version i+1 to i+2.
var migrationSteps = []migrationStep{
	addLocationAndRefresh,
}

// migrate brings cfg up to CurrentVersion in place. Versions newer than
// CurrentVersion, or below 1, are rejected.
func migrate(cfg *Config) error {
	switch {
	case cfg.Version == CurrentVersion:
		return nil
	case cfg.Version > CurrentVersion:
		return fmt.Errorf("%w: config version %d is newer than supported version %d (upgrade duewatch)",
			ErrInvalid, cfg.Version, CurrentVersion)
	case cfg.Version < 1:
		return fmt.Errorf("%w: config version %d is invalid", ErrInvalid, cfg.Version)
	}

	for cfg.Version < CurrentVersion {
		idx := cfg.Version - 1
		if idx >= len(migrationSteps) {
			return fmt.Errorf("%w: no migration path from version %d", ErrInvalid, cfg.Version)
		}
		migrationSteps[idx](cfg)
		cfg.Version++
	}
	return nil
}

// addLocationAndRefresh fills in the settings introduced in version 2.
func addLocationAndRefresh(cfg *Config) {
	if cfg.LocationName == "" {
		cfg.LocationName = DefaultLocation
	}
	if cfg.TUI.Refresh == "" {
		cfg.TUI.Refresh = DefaultRefresh
	}
}
