package main

import (
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"orbit-demo/internal/assets"
	"orbit-demo/internal/config"
	"orbit-demo/internal/debug"
	"orbit-demo/internal/env"
	"orbit-demo/internal/fonts"
	"orbit-demo/internal/graphics"
	"orbit-demo/internal/input"
	"orbit-demo/internal/logger"
	"orbit-demo/internal/render"
	"orbit-demo/internal/scene"
)

func main() {
	cfgPath := pflag.StringP("config", "c", config.ConfigPath, "YAML config file")
	seed := pflag.Int64("seed", 0, "orbit seed; 0 keeps the configured one")
	level := pflag.String("log-level", "", "log level (debug, info, warn, error)")
	saveCfg := pflag.Bool("save-config", false, "write the effective config to --config and exit")
	pflag.Parse()

	envSet, envErr := env.Load(env.DotEnvPath, config.EnvPrefix+"_")
	cfg, cfgErr := config.Load(*cfgPath)
	if *seed != 0 {
		cfg.Orbit.Seed = *seed
	}
	if *level != "" {
		cfg.Log.Level = *level
	}

	log, err := logger.New(cfg.Log.File, logger.ParseLevel(cfg.Log.Level))
	if err != nil {
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("open log")
	}
	defer log.Close()
	if envErr != nil {
		log.Warn().Err(envErr).Msg("read " + env.DotEnvPath)
	} else if envSet > 0 {
		log.Debug().Int("vars", envSet).Msg("loaded " + env.DotEnvPath)
	}
	if cfgErr != nil {
		log.Warn().Err(cfgErr).Str("path", *cfgPath).Msg("using default config")
	}

	if *saveCfg {
		if err := config.Save(*cfgPath, cfg); err != nil {
			log.Error().Err(err).Msg("save config")
			log.Close()
			os.Exit(1)
		}
		log.Info().Str("path", *cfgPath).Msg("config saved")
		return
	}

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("fatal")
		log.Close()
		os.Exit(1)
	}
}

func run(cfg config.Config, log *logger.Logger) error {
	var (
		pool *assets.Pool
		scn  *scene.Scene
		reg  *render.Registry
		font rl.Font
	)
	dbg := debug.New()
	dbg.SetShowFPS(cfg.Debug.ShowFPS)
	dbg.SetShowMemAlloc(cfg.Debug.ShowMemAlloc)
	dbg.SetShowStats(cfg.Debug.ShowStats)

	setup := func() error {
		var err error
		pool, err = assets.LoadPool(assets.PoolOptions{
			Dir:             cfg.Assets.TextureDir,
			ProceduralCount: cfg.Assets.ProceduralCount,
			Width:           cfg.Assets.TextureWidth,
			Height:          cfg.Assets.TextureHeight,
			Seed:            cfg.Orbit.Seed,
		}, log)
		if err != nil {
			return err
		}
		scn, err = scene.New(scene.Options{
			Center:           cfg.Orbit.Center(),
			SunRadius:        cfg.Orbit.SunRadius,
			CraftStart:       cfg.Craft.StartPosition(),
			Craft:            cfg.Craft.CraftConfig(),
			Orbit:            cfg.Orbit.OrbitConfig(),
			Ellipse:          cfg.Ellipse.EllipseConfig(),
			MaxSubSteps:      cfg.Physics.MaxSubSteps,
			BrakeForce:       cfg.Craft.BrakeForce,
			MoveSpeed:        cfg.Camera.MoveSpeed,
			RotationSpeed:    cfg.Camera.RotationSpeed,
			MouseSensitivity: cfg.Camera.MouseSensitivity,
			FOV:              cfg.Window.FOV,
			SkyboxDir:        cfg.Assets.SkyboxDir,
			GridVisible:      cfg.Debug.GridVisible,
			Planets:          pool.Planets,
			Sun:              pool.Sun,
		}, log)
		if err != nil {
			return err
		}
		reg = render.NewRegistry(cfg.Orbit.HaloModelRadius)

		path, err := fonts.First(cfg.Assets.FontDir)
		if err != nil {
			log.Warn().Err(err).Msg("scan fonts")
		} else if path != "" {
			font = rl.LoadFont(path)
			dbg.SetFont(font)
		}
		return nil
	}

	update := func(dt float32) error {
		err := scn.Update(dt, input.Poll())
		dbg.SetStats(scn.Stats())
		return err
	}

	draw := func() {
		scn.Draw(reg, render.DefaultLight())
		dbg.Draw()
	}

	teardown := func() {
		if err := scn.Close(); err != nil {
			log.Error().Err(err).Msg("close scene")
		}
		reg.Unload()
		pool.Unload()
		if font.Texture.ID != 0 {
			rl.UnloadFont(font)
		}
	}

	return graphics.Run(graphics.Options{
		Width:      int32(cfg.Window.Width),
		Height:     int32(cfg.Window.Height),
		Title:      cfg.Window.Title,
		Fullscreen: cfg.Window.Fullscreen,
		TargetFPS:  int32(cfg.Window.TargetFPS),
	}, setup, update, draw, teardown)
}
