package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/samber/lo"
)

// Settings contains everything that can be configured for lag compensation and the server running it.
type Settings struct {
	LagCompensation LagCompensation
	Server          Server
}

// LagCompensation are the tunables of the lag compensation manager.
type LagCompensation struct {
	// Enabled is whether lag compensation should run at all. When disabled no history is kept and
	// every session is a no-op.
	Enabled bool
	// MaxCompensationSeconds is how far back in time players may be rewound, in [0, 1].
	MaxCompensationSeconds float64
	// TeleportDistance is the horizontal distance between two consecutive snapshots above which the
	// player is considered to have teleported, and cannot be rewound past that point.
	TeleportDistance float32
	// FlushBoneCache invalidates cached bone transforms after animation state is rewound or restored.
	FlushBoneCache bool
	// DebugVisualize reports every backtracked player to the debug overlay.
	DebugVisualize bool
	// FixStuckPositions probes rewound positions and moves players out of solids where possible.
	FixStuckPositions bool
	// MaxHistoryRecords is the sanity ceiling on snapshots kept per player.
	MaxHistoryRecords int
	// Debug turns logic errors and invariant violations into panics.
	Debug bool
}

// Server are the settings of the simulation that drives lag compensation.
type Server struct {
	TickRate   int
	MaxPlayers int
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	settings := Settings{}
	settings.LagCompensation.Enabled = true
	settings.LagCompensation.MaxCompensationSeconds = 1.0
	settings.LagCompensation.TeleportDistance = 64
	settings.LagCompensation.FlushBoneCache = true
	settings.LagCompensation.FixStuckPositions = true
	settings.LagCompensation.MaxHistoryRecords = 1000

	settings.Server.TickRate = 66
	settings.Server.MaxPlayers = 32
	return settings
}

// Validate clamps tunables into their supported ranges, and returns an error for settings that
// cannot be repaired.
func (s *Settings) Validate() error {
	lc := &s.LagCompensation
	lc.MaxCompensationSeconds = lo.Clamp(lc.MaxCompensationSeconds, 0, 1)
	if lc.TeleportDistance < 0 {
		return fmt.Errorf("teleport distance must not be negative, got %v", lc.TeleportDistance)
	}
	if lc.MaxHistoryRecords <= 0 {
		lc.MaxHistoryRecords = 1000
	}
	if s.Server.TickRate <= 0 {
		return fmt.Errorf("tick rate must be positive, got %d", s.Server.TickRate)
	}
	if s.Server.MaxPlayers <= 0 {
		return fmt.Errorf("max players must be positive, got %d", s.Server.MaxPlayers)
	}
	return nil
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	s := DefaultSettings()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if data, err := toml.Marshal(s); err != nil {
			return fmt.Errorf("failed encoding default settings: %v", err)
		} else if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed creating settings file: %v", err)
		}
		return nil
	}
	return errors.New("settings file already exists")
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
// Values missing from the file keep their defaults.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading settings: %v", err)
	}

	settings := DefaultSettings()
	if err = toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("error decoding settings: %v", err)
	}
	if err = settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %v", err)
	}
	return settings, nil
}
