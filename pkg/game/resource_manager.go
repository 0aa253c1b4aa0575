package game

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log"
	"os"

	"github.com/gonewx/carousel/pkg/config"
	"github.com/gonewx/carousel/pkg/embedded"
	"github.com/gonewx/carousel/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// defaultTileColor 未配置颜色时的占位图底色
var defaultTileColor = color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}

// ResourceManager is responsible for loading and caching the track images.
//
// Paths under "data/" are read from the embedded file system first, anything
// else from disk. Images that fail to load are replaced by a generated
// placeholder tile so the track always has one tile per configured entry.
//
// Not thread-safe; load everything from the game goroutine.
type ResourceManager struct {
	imageCache       map[string]*ebiten.Image // path -> Image
	placeholderCache map[color.RGBA]*ebiten.Image
	tileHeight       int
}

// NewResourceManager creates a ResourceManager for tiles displayed tileHeight pixels tall.
func NewResourceManager(tileHeight int) *ResourceManager {
	return &ResourceManager{
		imageCache:       make(map[string]*ebiten.Image),
		placeholderCache: make(map[color.RGBA]*ebiten.Image),
		tileHeight:       tileHeight,
	}
}

// LoadImage loads an image file from the specified path and caches it for future use.
// If the image has already been loaded, it returns the cached version.
// Supported formats: PNG and JPEG.
//
// Returns an error if the file cannot be opened or decoded.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	file, err := rm.open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// Placeholder returns the placeholder tile for the given base color.
// The tile is twice as wide as it is tall so the focal shift has room to move.
func (rm *ResourceManager) Placeholder(base color.RGBA) *ebiten.Image {
	if img, ok := rm.placeholderCache[base]; ok {
		return img
	}
	h := rm.tileHeight
	if h <= 0 {
		h = 1
	}
	img := utils.NewPlaceholderTile(2*h, h, base)
	rm.placeholderCache[base] = img
	return img
}

// LoadTile resolves one configured track image.
//
// Returns the image and the source path it came from. The source is empty
// when a placeholder was used.
func (rm *ResourceManager) LoadTile(cfg config.ImageConfig) (*ebiten.Image, string) {
	if cfg.Path != "" {
		img, err := rm.LoadImage(cfg.Path)
		if err == nil {
			return img, cfg.Path
		}
		log.Printf("[ResourceManager] Warning: %v, using placeholder", err)
	}

	base := defaultTileColor
	if cfg.Color != "" {
		if c, err := config.ParseHexColor(cfg.Color); err == nil {
			base = c
		}
	}
	return rm.Placeholder(base), ""
}

// Reset drops every cached image so the next LoadTile reads files again.
// Placeholders generated afterwards use the new tileHeight.
func (rm *ResourceManager) Reset(tileHeight int) {
	for _, img := range rm.imageCache {
		img.Deallocate()
	}
	for _, img := range rm.placeholderCache {
		img.Deallocate()
	}
	rm.imageCache = make(map[string]*ebiten.Image)
	rm.placeholderCache = make(map[color.RGBA]*ebiten.Image)
	rm.tileHeight = tileHeight
}

func (rm *ResourceManager) open(path string) (io.ReadCloser, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.Open(path)
	}
	return os.Open(path)
}
