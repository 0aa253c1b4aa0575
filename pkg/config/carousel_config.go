package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gonewx/carousel/pkg/carousel"
	"github.com/gonewx/carousel/pkg/embedded"
	"github.com/gonewx/carousel/pkg/utils"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 嵌入的默认配置路径
const DefaultConfigPath = "data/carousel.yaml"

// CarouselConfig 图片轨道配置
//
// 配置文件位置: data/carousel.yaml（嵌入），可通过 --config 指定外部文件
type CarouselConfig struct {
	// Viewport 逻辑屏幕配置
	Viewport ViewportConfig `yaml:"viewport"`

	// Track 轨道布局配置
	Track TrackConfig `yaml:"track"`

	// Scroll 拖拽与自动回滚调参
	Scroll ScrollConfig `yaml:"scroll"`

	// Images 轨道中的图片，按顺序排列
	Images []ImageConfig `yaml:"images"`
}

// ViewportConfig 逻辑屏幕配置
type ViewportConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// TrackConfig 轨道布局配置
type TrackConfig struct {
	ImageWidth  float64 `yaml:"imageWidth"`
	ImageHeight float64 `yaml:"imageHeight"`
	Gap         float64 `yaml:"gap"`
}

// ScrollConfig 拖拽与自动回滚调参
type ScrollConfig struct {
	// StepSize 自动回滚每帧步长（百分比）
	StepSize float64 `yaml:"stepSize"`

	// TransitionMs 每次投影的过渡时长（毫秒）
	TransitionMs int `yaml:"transitionMs"`

	// BoundaryPercentage 松手时触发自动回滚的阈值
	BoundaryPercentage float64 `yaml:"boundaryPercentage"`

	// Easing 过渡缓动："linear"、"easeIn"、"easeOut"、"easeInOut"
	Easing string `yaml:"easing"`
}

// ImageConfig 单张图片
type ImageConfig struct {
	// Path 图片文件路径（PNG/JPEG），为空则使用占位图
	Path string `yaml:"path"`

	// Color 占位图底色（#RRGGBB），Path 加载失败时同样使用
	Color string `yaml:"color"`
}

// DefaultCarouselConfig 返回默认配置
func DefaultCarouselConfig() *CarouselConfig {
	return &CarouselConfig{
		Viewport: ViewportConfig{
			Width:  1280,
			Height: 720,
			Title:  "Image Track",
		},
		Track: TrackConfig{
			ImageWidth:  288,
			ImageHeight: 403,
			Gap:         29,
		},
		Scroll: ScrollConfig{
			StepSize:           carousel.DefaultStepSize,
			TransitionMs:       1200,
			BoundaryPercentage: carousel.DefaultBoundaryPercentage,
			Easing:             "linear",
		},
		Images: []ImageConfig{
			{Color: "#2e4057"},
			{Color: "#66a182"},
			{Color: "#caffb9"},
			{Color: "#aef78e"},
			{Color: "#c0d461"},
			{Color: "#e76f51"},
		},
	}
}

// LoadCarouselConfig 加载轨道配置
//
// 加载顺序：
//   - path 非空：读取外部文件，失败返回错误
//   - path 为空：读取嵌入的 data/carousel.yaml，不可用时使用默认配置
//
// 参数:
//   - path: 配置文件路径，可为空
//
// 返回:
//   - *CarouselConfig: 加载成功后的配置结构
//   - error: 加载失败时返回错误
func LoadCarouselConfig(path string) (*CarouselConfig, error) {
	if path == "" {
		data, err := embedded.ReadFile(DefaultConfigPath)
		if err != nil {
			log.Printf("[Config] 嵌入配置不可用 (%v)，使用默认配置", err)
			return DefaultCarouselConfig(), nil
		}
		return ParseCarouselConfig(data)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read carousel config: %w", err)
	}
	return ParseCarouselConfig(data)
}

// ParseCarouselConfig 解析 YAML 配置
// 未出现的字段保留默认值；出现的 images 列表整体替换默认列表。
// 未知字段视为错误；百分比范围固定为 [-100, 0]，不可配置。
func ParseCarouselConfig(data []byte) (*CarouselConfig, error) {
	config := DefaultCarouselConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse carousel config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid carousel config: %w", err)
	}
	return config, nil
}

// Validate 验证配置有效性
func (c *CarouselConfig) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport size must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Track.ImageWidth <= 0 || c.Track.ImageHeight <= 0 {
		return fmt.Errorf("image size must be positive, got %.1fx%.1f", c.Track.ImageWidth, c.Track.ImageHeight)
	}
	if c.Track.Gap < 0 {
		return fmt.Errorf("gap should be >= 0, got %.1f", c.Track.Gap)
	}
	if c.Scroll.TransitionMs < 0 {
		return fmt.Errorf("transitionMs should be >= 0, got %d", c.Scroll.TransitionMs)
	}
	if _, ok := utils.EasingByName(c.Scroll.Easing); !ok {
		return fmt.Errorf("unknown easing '%s'", c.Scroll.Easing)
	}
	if err := c.Scroll.Params().Validate(); err != nil {
		return err
	}
	if len(c.Images) == 0 {
		return fmt.Errorf("at least one image is required")
	}
	for i, img := range c.Images {
		if img.Color == "" {
			continue
		}
		if _, err := ParseHexColor(img.Color); err != nil {
			return fmt.Errorf("image %d: %w", i, err)
		}
	}
	return nil
}

// Params 转换为控制器调参
func (s ScrollConfig) Params() carousel.Params {
	return carousel.Params{
		StepSize:           s.StepSize,
		BoundaryPercentage: s.BoundaryPercentage,
	}
}

// TransitionSeconds 返回过渡时长（秒）
func (s ScrollConfig) TransitionSeconds() float64 {
	return float64(s.TransitionMs) / 1000.0
}

// ParseHexColor 解析 #RRGGBB 或 #RGB 颜色
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color '%s'", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color '%s': %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
