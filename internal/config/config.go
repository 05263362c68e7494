// Package config loads demo settings from defaults, an optional YAML file and ORBIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"orbit-demo/internal/body"
	"orbit-demo/internal/orbit"
	"orbit-demo/internal/scene"
)

// ConfigPath is the default config file, relative to the process working directory.
const ConfigPath = "config/orbit.yaml"

// EnvPrefix prefixes environment overrides: orbit.base_radius becomes ORBIT_ORBIT_BASE_RADIUS.
const EnvPrefix = "ORBIT"

type Window struct {
	Width      int     `mapstructure:"width" yaml:"width"`
	Height     int     `mapstructure:"height" yaml:"height"`
	Title      string  `mapstructure:"title" yaml:"title"`
	Fullscreen bool    `mapstructure:"fullscreen" yaml:"fullscreen"`
	TargetFPS  int     `mapstructure:"target_fps" yaml:"target_fps"`
	FOV        float32 `mapstructure:"fov" yaml:"fov"`
}

type Physics struct {
	// MaxSubSteps caps fixed steps per frame; 0 runs one variable step.
	MaxSubSteps int `mapstructure:"max_sub_steps" yaml:"max_sub_steps"`
}

type Orbit struct {
	CenterX          float32 `mapstructure:"center_x" yaml:"center_x"`
	CenterY          float32 `mapstructure:"center_y" yaml:"center_y"`
	CenterZ          float32 `mapstructure:"center_z" yaml:"center_z"`
	BaseRadius       float32 `mapstructure:"base_radius" yaml:"base_radius"`
	Spacing          float32 `mapstructure:"spacing" yaml:"spacing"`
	GenerationRadius float32 `mapstructure:"generation_radius" yaml:"generation_radius"`
	OrbitSpeedMin    float32 `mapstructure:"orbit_speed_min" yaml:"orbit_speed_min"`
	OrbitSpeedMax    float32 `mapstructure:"orbit_speed_max" yaml:"orbit_speed_max"`
	SpinSpeedMin     float32 `mapstructure:"spin_speed_min" yaml:"spin_speed_min"`
	SpinSpeedMax     float32 `mapstructure:"spin_speed_max" yaml:"spin_speed_max"`
	SizeMin          float32 `mapstructure:"size_min" yaml:"size_min"`
	SizeMax          float32 `mapstructure:"size_max" yaml:"size_max"`
	OrbitMultiplier  float32 `mapstructure:"orbit_multiplier" yaml:"orbit_multiplier"`
	SpinMultiplier   float32 `mapstructure:"spin_multiplier" yaml:"spin_multiplier"`
	DrawHalos        bool    `mapstructure:"draw_halos" yaml:"draw_halos"`
	HaloModelRadius  float32 `mapstructure:"halo_model_radius" yaml:"halo_model_radius"`
	HaloLift         float32 `mapstructure:"halo_lift" yaml:"halo_lift"`
	HaloAlpha        uint8   `mapstructure:"halo_alpha" yaml:"halo_alpha"`
	EvictFactor      float32 `mapstructure:"evict_factor" yaml:"evict_factor"`
	Seed             int64   `mapstructure:"seed" yaml:"seed"`
	SunRadius        float32 `mapstructure:"sun_radius" yaml:"sun_radius"`
}

type Craft struct {
	StartX             float32 `mapstructure:"start_x" yaml:"start_x"`
	StartY             float32 `mapstructure:"start_y" yaml:"start_y"`
	StartZ             float32 `mapstructure:"start_z" yaml:"start_z"`
	Mass               float32 `mapstructure:"mass" yaml:"mass"`
	ThrustForce        float32 `mapstructure:"thrust_force" yaml:"thrust_force"`
	RotationTorque     float32 `mapstructure:"rotation_torque" yaml:"rotation_torque"`
	MaxTurnRate        float32 `mapstructure:"max_turn_rate" yaml:"max_turn_rate"`
	BrakeForce         float32 `mapstructure:"brake_force" yaml:"brake_force"`
	BrakeThreshold     float32 `mapstructure:"brake_threshold" yaml:"brake_threshold"`
	AngularBrakeFactor float32 `mapstructure:"angular_brake_factor" yaml:"angular_brake_factor"`
	SteerAlignment     float32 `mapstructure:"steer_alignment" yaml:"steer_alignment"`
	LinearDamping      float32 `mapstructure:"linear_damping" yaml:"linear_damping"`
	AngularDamping     float32 `mapstructure:"angular_damping" yaml:"angular_damping"`
}

// Ellipse is the lone planet on a fixed ellipse; a zero semi axis disables it.
type Ellipse struct {
	SemiMajor  float32 `mapstructure:"semi_major" yaml:"semi_major"`
	SemiMinor  float32 `mapstructure:"semi_minor" yaml:"semi_minor"`
	Radius     float32 `mapstructure:"radius" yaml:"radius"`
	OrbitSpeed float32 `mapstructure:"orbit_speed" yaml:"orbit_speed"`
	SpinSpeed  float32 `mapstructure:"spin_speed" yaml:"spin_speed"`
}

type Camera struct {
	MoveSpeed        float32 `mapstructure:"move_speed" yaml:"move_speed"`
	RotationSpeed    float32 `mapstructure:"rotation_speed" yaml:"rotation_speed"`
	MouseSensitivity float32 `mapstructure:"mouse_sensitivity" yaml:"mouse_sensitivity"`
}

type Assets struct {
	TextureDir      string `mapstructure:"texture_dir" yaml:"texture_dir"`
	ProceduralCount int    `mapstructure:"procedural_count" yaml:"procedural_count"`
	TextureWidth    int    `mapstructure:"texture_width" yaml:"texture_width"`
	TextureHeight   int    `mapstructure:"texture_height" yaml:"texture_height"`
	SkyboxDir       string `mapstructure:"skybox_dir" yaml:"skybox_dir"`
	FontDir         string `mapstructure:"font_dir" yaml:"font_dir"`
}

type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

type Debug struct {
	ShowFPS      bool `mapstructure:"show_fps" yaml:"show_fps"`
	ShowMemAlloc bool `mapstructure:"show_memalloc" yaml:"show_memalloc"`
	ShowStats    bool `mapstructure:"show_stats" yaml:"show_stats"`
	GridVisible  bool `mapstructure:"grid_visible" yaml:"grid_visible"`
}

// Config is the full set of demo settings. Persisted across runs with Save.
type Config struct {
	Window  Window  `mapstructure:"window" yaml:"window"`
	Physics Physics `mapstructure:"physics" yaml:"physics"`
	Orbit   Orbit   `mapstructure:"orbit" yaml:"orbit"`
	Ellipse Ellipse `mapstructure:"ellipse" yaml:"ellipse"`
	Craft   Craft   `mapstructure:"craft" yaml:"craft"`
	Camera  Camera  `mapstructure:"camera" yaml:"camera"`
	Assets  Assets  `mapstructure:"assets" yaml:"assets"`
	Log     Log     `mapstructure:"log" yaml:"log"`
	Debug   Debug   `mapstructure:"debug" yaml:"debug"`
}

// Default returns the settings the demo ships with.
func Default() Config {
	oc := orbit.DefaultConfig()
	cc := body.DefaultCraftConfig()
	ec := scene.DefaultEllipse()
	return Config{
		Window: Window{Width: 1280, Height: 720, Title: "orbit-demo", TargetFPS: 60, FOV: 60},
		Physics: Physics{
			MaxSubSteps: 10,
		},
		Orbit: Orbit{
			BaseRadius:       oc.BaseRadius,
			Spacing:          oc.Spacing,
			GenerationRadius: oc.GenerationRadius,
			OrbitSpeedMin:    oc.OrbitSpeedMin,
			OrbitSpeedMax:    oc.OrbitSpeedMax,
			SpinSpeedMin:     oc.SpinSpeedMin,
			SpinSpeedMax:     oc.SpinSpeedMax,
			SizeMin:          oc.SizeMin,
			SizeMax:          oc.SizeMax,
			OrbitMultiplier:  oc.OrbitMultiplier,
			SpinMultiplier:   oc.SpinMultiplier,
			DrawHalos:        oc.DrawHalos,
			HaloModelRadius:  oc.HaloModelRadius,
			HaloLift:         oc.HaloLift,
			HaloAlpha:        oc.HaloColor.A,
			SunRadius:        1,
		},
		Ellipse: Ellipse(ec),
		Craft: Craft{
			StartZ:             -70,
			Mass:               cc.Mass,
			ThrustForce:        cc.ThrustForce,
			RotationTorque:     cc.RotationTorque,
			MaxTurnRate:        cc.MaxTurnRate,
			BrakeForce:         30,
			BrakeThreshold:     cc.BrakeThreshold,
			AngularBrakeFactor: cc.AngularBrakeFactor,
			SteerAlignment:     cc.SteerAlignment,
			LinearDamping:      cc.LinearDamping,
			AngularDamping:     cc.AngularDamping,
		},
		Camera: Camera{MoveSpeed: 0.30, RotationSpeed: 3.0, MouseSensitivity: 0.25},
		Assets: Assets{TextureDir: "assets/textures", ProceduralCount: 6, TextureWidth: 256, TextureHeight: 128, SkyboxDir: "assets/skybox", FontDir: "assets/fonts"},
		Log:    Log{Level: "info", File: "logs/orbit.txt"},
		Debug:  Debug{ShowFPS: true, ShowStats: true},
	}
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("window.fullscreen", d.Window.Fullscreen)
	v.SetDefault("window.target_fps", d.Window.TargetFPS)
	v.SetDefault("window.fov", d.Window.FOV)

	v.SetDefault("physics.max_sub_steps", d.Physics.MaxSubSteps)

	v.SetDefault("orbit.center_x", d.Orbit.CenterX)
	v.SetDefault("orbit.center_y", d.Orbit.CenterY)
	v.SetDefault("orbit.center_z", d.Orbit.CenterZ)
	v.SetDefault("orbit.base_radius", d.Orbit.BaseRadius)
	v.SetDefault("orbit.spacing", d.Orbit.Spacing)
	v.SetDefault("orbit.generation_radius", d.Orbit.GenerationRadius)
	v.SetDefault("orbit.orbit_speed_min", d.Orbit.OrbitSpeedMin)
	v.SetDefault("orbit.orbit_speed_max", d.Orbit.OrbitSpeedMax)
	v.SetDefault("orbit.spin_speed_min", d.Orbit.SpinSpeedMin)
	v.SetDefault("orbit.spin_speed_max", d.Orbit.SpinSpeedMax)
	v.SetDefault("orbit.size_min", d.Orbit.SizeMin)
	v.SetDefault("orbit.size_max", d.Orbit.SizeMax)
	v.SetDefault("orbit.orbit_multiplier", d.Orbit.OrbitMultiplier)
	v.SetDefault("orbit.spin_multiplier", d.Orbit.SpinMultiplier)
	v.SetDefault("orbit.draw_halos", d.Orbit.DrawHalos)
	v.SetDefault("orbit.halo_model_radius", d.Orbit.HaloModelRadius)
	v.SetDefault("orbit.halo_lift", d.Orbit.HaloLift)
	v.SetDefault("orbit.halo_alpha", d.Orbit.HaloAlpha)
	v.SetDefault("orbit.evict_factor", d.Orbit.EvictFactor)
	v.SetDefault("orbit.seed", d.Orbit.Seed)
	v.SetDefault("orbit.sun_radius", d.Orbit.SunRadius)

	v.SetDefault("ellipse.semi_major", d.Ellipse.SemiMajor)
	v.SetDefault("ellipse.semi_minor", d.Ellipse.SemiMinor)
	v.SetDefault("ellipse.radius", d.Ellipse.Radius)
	v.SetDefault("ellipse.orbit_speed", d.Ellipse.OrbitSpeed)
	v.SetDefault("ellipse.spin_speed", d.Ellipse.SpinSpeed)

	v.SetDefault("craft.start_x", d.Craft.StartX)
	v.SetDefault("craft.start_y", d.Craft.StartY)
	v.SetDefault("craft.start_z", d.Craft.StartZ)
	v.SetDefault("craft.mass", d.Craft.Mass)
	v.SetDefault("craft.thrust_force", d.Craft.ThrustForce)
	v.SetDefault("craft.rotation_torque", d.Craft.RotationTorque)
	v.SetDefault("craft.max_turn_rate", d.Craft.MaxTurnRate)
	v.SetDefault("craft.brake_force", d.Craft.BrakeForce)
	v.SetDefault("craft.brake_threshold", d.Craft.BrakeThreshold)
	v.SetDefault("craft.angular_brake_factor", d.Craft.AngularBrakeFactor)
	v.SetDefault("craft.steer_alignment", d.Craft.SteerAlignment)
	v.SetDefault("craft.linear_damping", d.Craft.LinearDamping)
	v.SetDefault("craft.angular_damping", d.Craft.AngularDamping)

	v.SetDefault("camera.move_speed", d.Camera.MoveSpeed)
	v.SetDefault("camera.rotation_speed", d.Camera.RotationSpeed)
	v.SetDefault("camera.mouse_sensitivity", d.Camera.MouseSensitivity)

	v.SetDefault("assets.texture_dir", d.Assets.TextureDir)
	v.SetDefault("assets.procedural_count", d.Assets.ProceduralCount)
	v.SetDefault("assets.texture_width", d.Assets.TextureWidth)
	v.SetDefault("assets.texture_height", d.Assets.TextureHeight)
	v.SetDefault("assets.skybox_dir", d.Assets.SkyboxDir)
	v.SetDefault("assets.font_dir", d.Assets.FontDir)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)

	v.SetDefault("debug.show_fps", d.Debug.ShowFPS)
	v.SetDefault("debug.show_memalloc", d.Debug.ShowMemAlloc)
	v.SetDefault("debug.show_stats", d.Debug.ShowStats)
	v.SetDefault("debug.grid_visible", d.Debug.GridVisible)
}

// Load reads settings from path (ConfigPath when empty) over Default(), then applies
// ORBIT_* environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	if path == "" {
		path = ConfigPath
	}
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Default(), fmt.Errorf("error reading config file: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Default(), fmt.Errorf("stat config file: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Default(), fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

// Save writes c as YAML to path (ConfigPath when empty), creating the directory if needed.
func Save(path string, c Config) error {
	if path == "" {
		path = ConfigPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Center returns the orbit center.
func (o Orbit) Center() rl.Vector3 {
	return rl.NewVector3(o.CenterX, o.CenterY, o.CenterZ)
}

// OrbitConfig converts the section to the orbit system's config.
func (o Orbit) OrbitConfig() orbit.Config {
	c := orbit.DefaultConfig()
	c.BaseRadius = o.BaseRadius
	c.Spacing = o.Spacing
	c.GenerationRadius = o.GenerationRadius
	c.OrbitSpeedMin, c.OrbitSpeedMax = o.OrbitSpeedMin, o.OrbitSpeedMax
	c.SpinSpeedMin, c.SpinSpeedMax = o.SpinSpeedMin, o.SpinSpeedMax
	c.SizeMin, c.SizeMax = o.SizeMin, o.SizeMax
	c.OrbitMultiplier = o.OrbitMultiplier
	c.SpinMultiplier = o.SpinMultiplier
	c.DrawHalos = o.DrawHalos
	c.HaloModelRadius = o.HaloModelRadius
	c.HaloLift = o.HaloLift
	c.HaloColor.A = o.HaloAlpha
	c.EvictFactor = o.EvictFactor
	c.Seed = o.Seed
	return c
}

// EllipseConfig converts the section to the scene's elliptic planet.
func (e Ellipse) EllipseConfig() scene.Ellipse {
	return scene.Ellipse(e)
}

// StartPosition returns where the craft spawns.
func (c Craft) StartPosition() rl.Vector3 {
	return rl.NewVector3(c.StartX, c.StartY, c.StartZ)
}

// CraftConfig converts the section to the craft's tuning.
func (c Craft) CraftConfig() body.CraftConfig {
	cc := body.DefaultCraftConfig()
	cc.Mass = c.Mass
	cc.ThrustForce = c.ThrustForce
	cc.RotationTorque = c.RotationTorque
	cc.MaxTurnRate = c.MaxTurnRate
	cc.BrakeThreshold = c.BrakeThreshold
	cc.AngularBrakeFactor = c.AngularBrakeFactor
	cc.SteerAlignment = c.SteerAlignment
	cc.LinearDamping = c.LinearDamping
	cc.AngularDamping = c.AngularDamping
	return cc
}
