// Package scenes 包含应用的场景实现
package scenes

import (
	"fmt"
	"image/color"
	"log"
	"reflect"

	"github.com/gonewx/carousel/pkg/carousel"
	"github.com/gonewx/carousel/pkg/config"
	"github.com/gonewx/carousel/pkg/ecs"
	"github.com/gonewx/carousel/pkg/entities"
	"github.com/gonewx/carousel/pkg/game"
	"github.com/gonewx/carousel/pkg/scheduler"
	"github.com/gonewx/carousel/pkg/systems"
	"github.com/gonewx/carousel/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// backgroundColor 场景底色
var backgroundColor = color.Black

// CarouselScene 图片轨道场景
//
// 每帧顺序：
//  1. 输入系统把指针事件交给控制器
//  2. 帧调度器执行上一帧请求的回调（自动回滚步进）
//  3. 过渡系统推进轨道和图片的过渡
type CarouselScene struct {
	cfg             *config.CarouselConfig
	resourceManager *game.ResourceManager
	stateStore      *game.StateStore
	verbose         bool

	entityManager *ecs.EntityManager
	frames        *scheduler.FrameScheduler
	controller    *carousel.Controller

	renderSystem     *systems.TrackRenderSystem
	transitionSystem *systems.TransitionSystem
	inputSystem      *systems.PointerInputSystem
}

// NewCarouselScene 创建图片轨道场景
//
// 参数：
//   - cfg: 轨道配置（必须已通过 Validate）
//   - rm: 资源管理器
//   - store: 状态存储，可为 nil（不恢复也不保存）
//   - verbose: 是否绘制调试信息
func NewCarouselScene(cfg *config.CarouselConfig, rm *game.ResourceManager, store *game.StateStore, verbose bool) (*CarouselScene, error) {
	s := &CarouselScene{
		cfg:             cfg,
		resourceManager: rm,
		stateStore:      store,
		verbose:         verbose,
		entityManager:   ecs.NewEntityManager(),
		frames:          scheduler.NewFrameScheduler(),
	}

	var state carousel.State
	if store != nil {
		state = store.State()
	}
	params := cfg.Scroll.Params()
	state.Percentage = carousel.Clamp(state.Percentage)
	state.PrevPercentage = carousel.Clamp(state.PrevPercentage)

	track := s.buildTrack(state.Percentage)
	s.renderSystem = systems.NewTrackRenderSystem(
		s.entityManager, track, cfg.Scroll.TransitionSeconds(),
		float64(cfg.Viewport.Width), float64(cfg.Viewport.Height),
	)

	controller, err := carousel.NewController(params, float64(cfg.Viewport.Width), s.renderSystem, s.frames)
	if err != nil {
		return nil, fmt.Errorf("failed to create carousel controller: %w", err)
	}
	controller.Restore(state)
	s.controller = controller

	s.transitionSystem = systems.NewTransitionSystem(s.entityManager)
	easing, _ := utils.EasingByName(cfg.Scroll.Easing)
	s.transitionSystem.SetEasing(easing)

	s.inputSystem = systems.NewPointerInputSystem(controller)

	log.Printf("[CarouselScene] 创建完成: %d 张图片, 起始位置 %.2f%%", len(cfg.Images), state.Percentage)
	return s, nil
}

// buildTrack 创建轨道实体和所有图片实体
func (s *CarouselScene) buildTrack(percentage float64) ecs.EntityID {
	tc := s.cfg.Track
	track := entities.NewTrackEntity(s.entityManager, tc.ImageWidth, tc.ImageHeight, tc.Gap, percentage)

	for i, imgCfg := range s.cfg.Images {
		img, source := s.resourceManager.LoadTile(imgCfg)
		entities.NewImageEntity(s.entityManager, track, i, img, source, percentage)
	}
	return track
}

// rebuildTrack 销毁当前轨道并按当前百分比重建
func (s *CarouselScene) rebuildTrack() {
	old := s.renderSystem.Track()
	for _, id := range s.renderSystem.Images() {
		s.entityManager.DestroyEntity(id)
	}
	s.entityManager.DestroyEntity(old)
	s.entityManager.RemoveMarkedEntities()
	s.resourceManager.Reset(int(s.cfg.Track.ImageHeight))

	track := s.buildTrack(s.controller.Percentage())
	s.renderSystem.SetTrack(track)
	log.Printf("[CarouselScene] 轨道已重建: %d 张图片", len(s.cfg.Images))
}

// Update 更新场景
func (s *CarouselScene) Update(deltaTime float64) {
	s.inputSystem.Update()
	s.frames.RunFrame()
	s.transitionSystem.Update(deltaTime)
}

// Draw 绘制场景
func (s *CarouselScene) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	s.renderSystem.Draw(screen)

	if s.verbose {
		s.drawDebug(screen)
	}
}

func (s *CarouselScene) drawDebug(screen *ebiten.Image) {
	msg := fmt.Sprintf(
		"TPS: %.0f\npercentage: %.2f\nprev: %.2f\ndragging: %v\nauto-scroll: %v\nframe: %d",
		ebiten.ActualTPS(),
		s.controller.Percentage(),
		s.controller.PrevPercentage(),
		s.controller.IsDragging(),
		s.controller.IsAutoScrolling(),
		s.frames.Frame(),
	)
	ebitenutil.DebugPrintAt(screen, msg, 10, 10)
}

// ApplyConfig 应用重新加载的配置
//
// 调参（步长、阈值、过渡、缓动）立即生效；
// 图片列表或轨道尺寸变化时重新读取图片并重建轨道，保留当前滚动位置。
func (s *CarouselScene) ApplyConfig(cfg *config.CarouselConfig) error {
	if err := s.controller.SetParams(cfg.Scroll.Params()); err != nil {
		return fmt.Errorf("failed to apply scroll params: %w", err)
	}

	rebuild := cfg.Track != s.cfg.Track || !reflect.DeepEqual(cfg.Images, s.cfg.Images)
	s.cfg = cfg

	if rebuild {
		s.rebuildTrack()
	}

	s.renderSystem.SetDuration(cfg.Scroll.TransitionSeconds())
	s.renderSystem.SetViewport(float64(cfg.Viewport.Width), float64(cfg.Viewport.Height))
	s.controller.SetViewportWidth(float64(cfg.Viewport.Width))

	easing, _ := utils.EasingByName(cfg.Scroll.Easing)
	s.transitionSystem.SetEasing(easing)

	log.Printf("[CarouselScene] 配置已应用 (rebuild=%v)", rebuild)
	return nil
}

// SaveOnExit 实现 game.Saveable
func (s *CarouselScene) SaveOnExit() bool {
	if s.stateStore == nil {
		return true
	}
	s.stateStore.SetState(s.controller.State())
	if err := s.stateStore.Save(); err != nil {
		log.Printf("[CarouselScene] 保存轨道状态失败: %v", err)
		return false
	}
	return true
}

// Controller 返回轨道控制器
func (s *CarouselScene) Controller() *carousel.Controller {
	return s.controller
}

// TileLayout 返回当前帧的图片布局
func (s *CarouselScene) TileLayout() []systems.TileLayout {
	return s.renderSystem.Layout()
}

// Input 返回指针输入系统
func (s *CarouselScene) Input() *systems.PointerInputSystem {
	return s.inputSystem
}

// TrackValue 返回轨道过渡的当前值
func (s *CarouselScene) TrackValue() float64 {
	return s.renderSystem.TrackOffset()
}
