// Package config holds the tuning values for movement, doors and
// interaction, loadable from YAML over compiled-in defaults.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Movement Movement `yaml:"movement"`
	Door     Door     `yaml:"door"`
	Interact Interact `yaml:"interact"`
}

type Movement struct {
	WalkSpeed      float32 `yaml:"walk_speed"`
	SprintSpeed    float32 `yaml:"sprint_speed"`
	CrouchSpeed    float32 `yaml:"crouch_speed"`
	Acceleration   float32 `yaml:"acceleration"`
	Deceleration   float32 `yaml:"deceleration"`
	StaminaMax     float32 `yaml:"stamina_max"`
	SprintDrain    float32 `yaml:"sprint_drain"`
	SprintRecover  float32 `yaml:"sprint_recover"`
	Gravity        float32 `yaml:"gravity"`
	MaxFallSpeed   float32 `yaml:"max_fall_speed"`
	GroundStick    float32 `yaml:"ground_stick"`
	Radius         float32 `yaml:"radius"`
	Height         float32 `yaml:"height"`
	EyeHeight      float32 `yaml:"eye_height"`
	CrouchEyeScale float32 `yaml:"crouch_eye_scale"`
}

type Door struct {
	OpenAngleDeg  float32 `yaml:"open_angle_deg"`
	Speed         float32 `yaml:"speed"`
	OpenThreshold float32 `yaml:"open_threshold"`
}

type Interact struct {
	MaxDistance      float32 `yaml:"max_distance"`
	FacingThreshold  float32 `yaml:"facing_threshold"`
	FacingHorizontal float32 `yaml:"facing_horizontal"`
	WeightHorizontal float32 `yaml:"weight_horizontal"`
	Weight3D         float32 `yaml:"weight_3d"`
}

// Default returns the tuning the game ships with.
func Default() Config {
	return Config{
		Movement: Movement{
			WalkSpeed:      4.0,
			SprintSpeed:    7.0,
			CrouchSpeed:    2.0,
			Acceleration:   10.0,
			Deceleration:   12.0,
			StaminaMax:     100.0,
			SprintDrain:    20.0,
			SprintRecover:  15.0,
			Gravity:        20.0,
			MaxFallSpeed:   30.0,
			GroundStick:    0.5,
			Radius:         0.35,
			Height:         1.8,
			EyeHeight:      1.6,
			CrouchEyeScale: 0.6,
		},
		Door: Door{
			OpenAngleDeg:  110.0,
			Speed:         1.5,
			OpenThreshold: 0.95,
		},
		Interact: Interact{
			MaxDistance:      3.0,
			FacingThreshold:  0.75,
			FacingHorizontal: 0.6,
			WeightHorizontal: 1.0,
			Weight3D:         0.5,
		},
	}
}

// Load decodes YAML from r over the defaults, so partial files only
// override what they mention.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile loads YAML config from a path. A missing file is not an error;
// the defaults apply.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func (c Config) Validate() error {
	m := c.Movement
	for _, v := range []struct {
		name  string
		value float32
	}{
		{"movement.walk_speed", m.WalkSpeed},
		{"movement.sprint_speed", m.SprintSpeed},
		{"movement.crouch_speed", m.CrouchSpeed},
		{"movement.acceleration", m.Acceleration},
		{"movement.deceleration", m.Deceleration},
		{"movement.stamina_max", m.StaminaMax},
		{"movement.radius", m.Radius},
		{"movement.height", m.Height},
		{"door.speed", c.Door.Speed},
	} {
		if v.value <= 0 {
			return fmt.Errorf("config: %s must be positive, got %v", v.name, v.value)
		}
	}
	if c.Door.OpenThreshold <= 0 || c.Door.OpenThreshold >= 1 {
		return fmt.Errorf("config: door.open_threshold must be in (0,1), got %v", c.Door.OpenThreshold)
	}
	return nil
}
