// Package assets builds the appearance pool planets draw their surfaces from.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"orbit-demo/internal/body"
	"orbit-demo/internal/logger"
	"orbit-demo/internal/texgen"
)

// textureExts are the image types loaded from the texture directory.
var textureExts = []string{".png", ".jpg", ".jpeg"}

// sunFile, when present in the texture directory, is used for the sun instead of joining the planet pool.
const sunFile = "sun"

// PoolOptions controls how the pool is filled.
type PoolOptions struct {
	Dir             string // texture directory; may be empty or missing
	ProceduralCount int    // planets generated when Dir has no images
	Width, Height   int    // procedural texture size
	Seed            int64  // procedural seed; 0 is time-based
}

// Pool holds the loaded planet textures and the sun texture. It owns them until Unload.
type Pool struct {
	Planets  []body.Appearance
	Sun      body.Appearance
	textures []rl.Texture2D
}

// FindTextures lists image files in dir, sorted by name. A missing dir yields no files.
func FindTextures(dir string) (planets []string, sun string, err error) {
	if dir == "" {
		return nil, "", nil
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("read texture dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !slices.Contains(textureExts, ext) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if strings.EqualFold(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())), sunFile) {
			sun = path
			continue
		}
		planets = append(planets, path)
	}
	slices.Sort(planets)
	return planets, sun, nil
}

// LoadPool loads every image in opts.Dir as a planet texture. When there are none, a
// procedural pool is painted instead. Must run after the window exists.
func LoadPool(opts PoolOptions, log *logger.Logger) (*Pool, error) {
	files, sunPath, err := FindTextures(opts.Dir)
	if err != nil {
		return nil, err
	}
	p := &Pool{}
	for _, f := range files {
		tex := rl.LoadTexture(f)
		if !rl.IsTextureValid(tex) {
			log.Warn().Str("file", f).Msg("texture failed to load, skipped")
			continue
		}
		p.add(tex, false)
	}
	if len(p.Planets) == 0 {
		count := max(opts.ProceduralCount, 1)
		log.Info().Int("count", count).Str("dir", opts.Dir).Msg("no planet textures found, generating")
		for _, o := range texgen.PoolOptions(count, opts.Seed) {
			o.Width, o.Height = opts.Width, opts.Height
			p.add(textureFrom(texgen.GenerateImage(o)), false)
		}
	}

	if sunPath != "" {
		if tex := rl.LoadTexture(sunPath); rl.IsTextureValid(tex) {
			p.add(tex, true)
		}
	}
	if p.Sun == nil {
		o := texgen.SunOptions(opts.Seed)
		o.Width, o.Height = opts.Width, opts.Height
		p.add(textureFrom(texgen.GenerateImage(o)), true)
	}
	log.Info().Int("planets", len(p.Planets)).Msg("appearance pool ready")
	return p, nil
}

func textureFrom(img *rl.Image) rl.Texture2D {
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	return tex
}

func (p *Pool) add(tex rl.Texture2D, sun bool) {
	p.textures = append(p.textures, tex)
	if sun {
		p.Sun = tex
		return
	}
	p.Planets = append(p.Planets, tex)
}

// Unload frees every texture in the pool.
func (p *Pool) Unload() {
	for _, t := range p.textures {
		rl.UnloadTexture(t)
	}
	p.textures = nil
	p.Planets = nil
	p.Sun = nil
}
