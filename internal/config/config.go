// Package config loads the sandbox tunables.
//
// Defaults are overridden by a TOML file, whose path and a few top-level
// values can in turn come from the environment or a .env file.
package config

import (
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/olivierh59500/charge-sandbox/internal/gizmo"
	"github.com/olivierh59500/charge-sandbox/internal/physics"
)

// Environment variables read by Load.
const (
	EnvConfigPath = "SANDBOX_CONFIG"
	EnvParticles  = "SANDBOX_PARTICLES"
	EnvSeed       = "SANDBOX_SEED"
)

// DefaultPath is the config file looked up when SANDBOX_CONFIG is unset.
const DefaultPath = "sandbox.toml"

// Config holds every tunable of a run.
type Config struct {
	Window   Window   `toml:"window"`
	Sim      Sim      `toml:"sim"`
	Particle Particle `toml:"particle"`
	Gizmo    Gizmo    `toml:"gizmo"`
}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type Sim struct {
	TPS      int     `toml:"tps"`       // fixed ticks per second
	MaxSpeed float64 `toml:"max_speed"` // units/second
	Friction float64 `toml:"friction"`  // inertia decay per second
	Inertia  bool    `toml:"inertia"`
	Wrap     bool    `toml:"wrap"`
	Parallel bool    `toml:"parallel"` // run the two force passes concurrently
}

type Particle struct {
	Initial        int              `toml:"initial"`
	SeedJitter     float64          `toml:"seed_jitter"`
	Seed           int64            `toml:"seed"`
	Force          physics.ForceLaw `toml:"force"`
	CancelDistance float64          `toml:"cancel_distance"`
	Limit          uint32           `toml:"limit"`
	LimitStep      uint32           `toml:"limit_step"`
	ClickRadius    float64          `toml:"click_radius"`
}

type Gizmo struct {
	EmitterInterval   float64          `toml:"emitter_interval"`
	DeleterRadius     float64          `toml:"deleter_radius"`
	SlowDeleterRadius float64          `toml:"slow_deleter_radius"`
	SlowDeleterRate   float64          `toml:"slow_deleter_rate"`
	Attractor         physics.ForceLaw `toml:"attractor"`
	Repulsor          physics.ForceLaw `toml:"repulsor"`
	PusherHalfWidth   float64          `toml:"pusher_half_width"`
	PusherHalfHeight  float64          `toml:"pusher_half_height"`
	PusherSpeed       float64          `toml:"pusher_speed"`
	EaterTarget       int              `toml:"eater_target"`
	EaterRadius       float64          `toml:"eater_radius"`
	EaterFullScale    float64          `toml:"eater_full_scale"`
	EaterDormancy     float64          `toml:"eater_dormancy"`
	EaterBurstRadius  float64          `toml:"eater_burst_radius"`
	Pursuit           physics.ForceLaw `toml:"pursuit"`
}

// Default returns the configuration the sandbox ships with.
func Default() *Config {
	gp := gizmo.DefaultParams()
	return &Config{
		Window: Window{Width: 1600, Height: 900, Title: "Particle simulator"},
		Sim: Sim{
			TPS:      60,
			MaxSpeed: 200,
			Wrap:     true,
			Parallel: true,
		},
		Particle: Particle{
			Initial:        1000,
			SeedJitter:     0.02,
			Seed:           1,
			Force:          physics.ForceLaw{Base: 10000, Cap: 5, Exponent: 2},
			CancelDistance: 4,
			Limit:          2000,
			LimitStep:      100,
			ClickRadius:    15,
		},
		Gizmo: Gizmo{
			EmitterInterval:   gp.EmitterInterval,
			DeleterRadius:     gp.DeleterRadius,
			SlowDeleterRadius: gp.SlowDeleterRadius,
			SlowDeleterRate:   gp.SlowDeleterRate,
			Attractor:         gp.Attractor,
			Repulsor:          gp.Repulsor,
			PusherHalfWidth:   gp.PusherHalfWidth,
			PusherHalfHeight:  gp.PusherHalfHeight,
			PusherSpeed:       gp.PusherSpeed,
			EaterTarget:       gp.EaterTarget,
			EaterRadius:       gp.EaterRadius,
			EaterFullScale:    gp.EaterFullScale,
			EaterDormancy:     gp.EaterDormancy,
			EaterBurstRadius:  gp.EaterBurstRadius,
			Pursuit:           gp.Pursuit,
		},
	}
}

// Params converts the gizmo section for gizmo.NewSet.
func (c *Config) Params() gizmo.Params {
	g := c.Gizmo
	return gizmo.Params{
		EmitterInterval:   g.EmitterInterval,
		DeleterRadius:     g.DeleterRadius,
		SlowDeleterRadius: g.SlowDeleterRadius,
		SlowDeleterRate:   g.SlowDeleterRate,
		Attractor:         g.Attractor,
		Repulsor:          g.Repulsor,
		PusherHalfWidth:   g.PusherHalfWidth,
		PusherHalfHeight:  g.PusherHalfHeight,
		PusherSpeed:       g.PusherSpeed,
		EaterTarget:       g.EaterTarget,
		EaterRadius:       g.EaterRadius,
		EaterFullScale:    g.EaterFullScale,
		EaterDormancy:     g.EaterDormancy,
		EaterBurstRadius:  g.EaterBurstRadius,
		Pursuit:           g.Pursuit,
	}
}

// TickDuration is the fixed simulated time per tick in seconds.
func (c *Config) TickDuration() float64 {
	return 1 / float64(c.Sim.TPS)
}

// Parse decodes the TOML file at path over the defaults.
func Parse(path string) (*Config, error) {
	conf := Default()
	if err := conf.decode(path); err != nil {
		return nil, err
	}
	return conf, conf.Validate()
}

// decode overlays the TOML file at path onto c.
func (c *Config) decode(path string) error {
	if _, err := toml.DecodeFile(path, c); err != nil {
		return errors.Wrapf(err, "decode %s", path)
	}
	return nil
}

// Load reads an optional .env file, then the TOML file named by
// SANDBOX_CONFIG (or sandbox.toml), then the remaining environment
// overrides. Missing files leave the defaults in place.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env")
	}

	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = DefaultPath
	}

	conf := Default()
	if _, err := os.Stat(path); err == nil {
		if err := conf.decode(path); err != nil {
			return nil, err
		}
		log.Printf("config: loaded %s", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(err, "stat %s", path)
	}

	if err := conf.applyEnv(); err != nil {
		return nil, err
	}
	return conf, conf.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvParticles); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvParticles)
		}
		c.Particle.Initial = n
	}
	if v := os.Getenv(EnvSeed); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvSeed)
		}
		c.Particle.Seed = n
	}
	return nil
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Sim.TPS <= 0:
		return errors.Errorf("tps %d must be positive", c.Sim.TPS)
	case c.Sim.MaxSpeed <= 0:
		return errors.Errorf("max_speed %v must be positive", c.Sim.MaxSpeed)
	case c.Sim.Friction < 0:
		return errors.Errorf("friction %v must not be negative", c.Sim.Friction)
	case c.Particle.Initial < 0:
		return errors.Errorf("initial particle count %d must not be negative", c.Particle.Initial)
	case c.Particle.CancelDistance < 0:
		return errors.Errorf("cancel_distance %v must not be negative", c.Particle.CancelDistance)
	case c.Gizmo.EmitterInterval <= 0:
		return errors.Errorf("emitter_interval %v must be positive", c.Gizmo.EmitterInterval)
	case c.Gizmo.DeleterRadius <= 0 || c.Gizmo.SlowDeleterRadius <= 0 || c.Gizmo.EaterRadius <= 0:
		return errors.New("gizmo radii must be positive")
	case c.Gizmo.SlowDeleterRate <= 0:
		return errors.Errorf("slow_deleter_rate %v must be positive", c.Gizmo.SlowDeleterRate)
	case c.Gizmo.EaterTarget <= 0:
		return errors.Errorf("eater_target %d must be positive", c.Gizmo.EaterTarget)
	case c.Gizmo.EaterDormancy <= 0:
		return errors.Errorf("eater_dormancy %v must be positive", c.Gizmo.EaterDormancy)
	}
	return nil
}
