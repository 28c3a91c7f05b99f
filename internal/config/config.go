package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

const (
	defaultAttributes       = 4
	defaultValues           = 3
	defaultBoardSize        = 12
	defaultCommandQueueSize = 64

	maxAttributes = 5
	maxValues     = 10
)

// GameConfig tunes the rule engine and the coordinator.
type GameConfig struct {
	Attributes int `json:"attributes"`
	Values     int `json:"values"`
	BoardSize  int `json:"board_size"`
	// CommandQueueSize bounds how many commands may wait for the coordinator.
	CommandQueueSize int `json:"command_queue_size"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
// Only the first call reads the file; later calls return the first result.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c, err := ParseGameConfig(data)
		if err != nil {
			loadErr = err
			return
		}
		cfg = &c
	})
	return loadErr
}

// ParseGameConfig decodes a JSON game config and applies defaults.
func ParseGameConfig(data []byte) (GameConfig, error) {
	var c GameConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return GameConfig{}, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	c.applyDefaults()
	return c, nil
}

// GetGameConfig returns the loaded game configuration, or defaults when none was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return DefaultGameConfig()
	}
	return *cfg
}

// DefaultGameConfig is the classic 81-card deck with a 12-card board.
func DefaultGameConfig() GameConfig {
	c := GameConfig{}
	c.applyDefaults()
	return c
}

func (c *GameConfig) applyDefaults() {
	if c.Attributes <= 0 || c.Attributes > maxAttributes {
		c.Attributes = defaultAttributes
	}
	if c.Values <= 0 || c.Values > maxValues {
		c.Values = defaultValues
	}
	if c.BoardSize <= 0 {
		c.BoardSize = defaultBoardSize
	}
	if c.CommandQueueSize <= 0 {
		c.CommandQueueSize = defaultCommandQueueSize
	}
}
