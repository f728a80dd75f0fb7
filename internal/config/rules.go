package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Rules holds the tunable game rules. Zero values are never valid; start from
// DefaultRules and override.
type Rules struct {
	// Boss selects the boss rule set: crossing the level threshold arms a boss
	// encounter and the level-up waits for its defeat. When false, crossing the
	// threshold levels up immediately.
	Boss bool `yaml:"boss"`

	SpawnInterval  int `yaml:"spawnInterval"`  // Initial ticks between obstacle spawns
	SpawnFloor     int `yaml:"spawnFloor"`     // Spawn interval never drops below this
	SpawnStep      int `yaml:"spawnStep"`      // Interval shrink per level
	LevelThreshold int `yaml:"levelThreshold"` // Kills needed for the first level-up
	ThresholdStep  int `yaml:"thresholdStep"`  // Threshold increase per level

	ComboWindow time.Duration `yaml:"comboWindow"` // Max gap between kills to keep a combo

	PowerUpInterval   int `yaml:"powerUpInterval"`   // Ticks between power-up spawns
	MaxPowerUps       int `yaml:"maxPowerUps"`       // Alive power-up cap
	EffectTicks       int `yaml:"effectTicks"`       // Power-up effect duration
	RapidFireCooldown int `yaml:"rapidFireCooldown"` // Min ticks between held shots

	WarningTicks int `yaml:"warningTicks"` // Boss warning duration
	BossMaxHits  int `yaml:"bossMaxHits"`
	BossReward   int `yaml:"bossReward"` // Score bonus on boss defeat
}

// DefaultRules returns the canonical rule set.
func DefaultRules() Rules {
	return Rules{
		Boss:              true,
		SpawnInterval:     60,
		SpawnFloor:        20,
		SpawnStep:         5,
		LevelThreshold:    10,
		ThresholdStep:     5,
		ComboWindow:       time.Second,
		PowerUpInterval:   60 * 30,
		MaxPowerUps:       5,
		EffectTicks:       600,
		RapidFireCooldown: 5,
		WarningTicks:      180,
		BossMaxHits:       10,
		BossReward:        50,
	}
}

// ClassicRules returns the rule set without boss encounters.
func ClassicRules() Rules {
	r := DefaultRules()
	r.Boss = false
	return r
}

// ErrInvalidRules is wrapped by every validation failure.
var ErrInvalidRules = errors.New("invalid rules")

// Validate checks that every rule is usable by the simulation.
func (r Rules) Validate() error {
	checks := []struct {
		ok   bool
		name string
	}{
		{r.SpawnFloor >= 1, "spawnFloor must be >= 1"},
		{r.SpawnInterval >= r.SpawnFloor, "spawnInterval must be >= spawnFloor"},
		{r.SpawnStep >= 0, "spawnStep must be >= 0"},
		{r.LevelThreshold >= 1, "levelThreshold must be >= 1"},
		{r.ThresholdStep >= 1, "thresholdStep must be >= 1"},
		{r.ComboWindow > 0, "comboWindow must be positive"},
		{r.PowerUpInterval >= 1, "powerUpInterval must be >= 1"},
		{r.MaxPowerUps >= 0, "maxPowerUps must be >= 0"},
		{r.EffectTicks >= 1, "effectTicks must be >= 1"},
		{r.RapidFireCooldown >= 1, "rapidFireCooldown must be >= 1"},
		{r.WarningTicks >= 1, "warningTicks must be >= 1"},
		{r.BossMaxHits >= 1, "bossMaxHits must be >= 1"},
		{r.BossReward >= 0, "bossReward must be >= 0"},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: %s", ErrInvalidRules, c.name)
		}
	}
	return nil
}

// ParseRules decodes YAML over the default rules, so a file only needs the
// keys it changes.
func ParseRules(data []byte) (Rules, error) {
	rules := DefaultRules()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("failed to parse rules YAML: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

// LoadRules reads a YAML rules file. An empty path yields the defaults.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read rules file: %w", err)
	}
	return ParseRules(data)
}
