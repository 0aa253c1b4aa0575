package systems

import (
	"sort"

	"github.com/gonewx/carousel/pkg/components"
	"github.com/gonewx/carousel/pkg/ecs"
	"github.com/gonewx/carousel/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// TileLayout 一张图片在屏幕上的位置和焦点
type TileLayout struct {
	Entity ecs.EntityID
	X, Y   float64
	W, H   float64
	FocalX float64 // object-position 水平百分比
}

// TrackRenderSystem 将轨道百分比投影到轨道和图片上
//
// Render 只设置过渡目标，实际数值由 TransitionSystem 逐帧推进；
// 同一百分比重复调用只会重新开始一段到相同目标的过渡，结果不变。
type TrackRenderSystem struct {
	entityManager *ecs.EntityManager
	trackEntity   ecs.EntityID
	duration      float64 // 过渡时长（秒）

	viewportWidth  float64
	viewportHeight float64
}

// NewTrackRenderSystem 创建轨道渲染系统
//
// 参数：
//   - em: 实体管理器
//   - trackEntity: 轨道实体（需要 TrackComponent 和 TransitionComponent）
//   - duration: 每次投影的过渡时长（秒）
//   - viewportWidth, viewportHeight: 逻辑屏幕尺寸
func NewTrackRenderSystem(em *ecs.EntityManager, trackEntity ecs.EntityID, duration, viewportWidth, viewportHeight float64) *TrackRenderSystem {
	return &TrackRenderSystem{
		entityManager:  em,
		trackEntity:    trackEntity,
		duration:       duration,
		viewportWidth:  viewportWidth,
		viewportHeight: viewportHeight,
	}
}

// SetDuration 设置过渡时长（秒）
func (s *TrackRenderSystem) SetDuration(duration float64) {
	s.duration = duration
}

// SetTrack 切换到新的轨道实体（重建轨道后调用）
func (s *TrackRenderSystem) SetTrack(trackEntity ecs.EntityID) {
	s.trackEntity = trackEntity
}

// Track 返回当前轨道实体
func (s *TrackRenderSystem) Track() ecs.EntityID {
	return s.trackEntity
}

// SetViewport 设置逻辑屏幕尺寸
func (s *TrackRenderSystem) SetViewport(width, height float64) {
	s.viewportWidth = width
	s.viewportHeight = height
}

// Render 实现 carousel.Renderer
// 轨道过渡到 percentage%，每张图片的焦点过渡到 (100 + percentage)%
func (s *TrackRenderSystem) Render(percentage float64) {
	if tc, ok := ecs.GetComponent[*components.TransitionComponent](s.entityManager, s.trackEntity); ok {
		tc.Retarget(percentage, s.duration)
	}

	for _, id := range s.Images() {
		if tc, ok := ecs.GetComponent[*components.TransitionComponent](s.entityManager, id); ok {
			tc.Retarget(100+percentage, s.duration)
		}
	}
}

// Images 返回轨道下当前所有图片实体，按序号排列
func (s *TrackRenderSystem) Images() []ecs.EntityID {
	ids := ecs.GetEntitiesWith2[*components.ImageComponent, *components.TransitionComponent](s.entityManager)

	type indexed struct {
		id    ecs.EntityID
		index int
	}
	list := make([]indexed, 0, len(ids))
	for _, id := range ids {
		img, _ := ecs.GetComponent[*components.ImageComponent](s.entityManager, id)
		if img.Track != s.trackEntity {
			continue
		}
		list = append(list, indexed{id: id, index: img.Index})
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].index < list[j].index })

	result := make([]ecs.EntityID, len(list))
	for i, it := range list {
		result[i] = it.id
	}
	return result
}

// TrackOffset 返回轨道当前的水平偏移（百分比）
func (s *TrackRenderSystem) TrackOffset() float64 {
	if tc, ok := ecs.GetComponent[*components.TransitionComponent](s.entityManager, s.trackEntity); ok {
		return tc.Value
	}
	return 0
}

// Layout 计算当前帧所有图片的屏幕位置
//
// 轨道左边缘位于视口水平中心，偏移为轨道宽度的百分比；纵向居中。
func (s *TrackRenderSystem) Layout() []TileLayout {
	track, ok := ecs.GetComponent[*components.TrackComponent](s.entityManager, s.trackEntity)
	if !ok {
		return nil
	}

	images := s.Images()
	trackWidth := track.Width(len(images))
	originX := s.viewportWidth/2 + s.TrackOffset()/100*trackWidth
	originY := s.viewportHeight/2 - track.ImageHeight/2

	layouts := make([]TileLayout, 0, len(images))
	for i, id := range images {
		focal := 100.0
		if tc, ok := ecs.GetComponent[*components.TransitionComponent](s.entityManager, id); ok {
			focal = tc.Value
		}
		layouts = append(layouts, TileLayout{
			Entity: id,
			X:      originX + float64(i)*(track.ImageWidth+track.Gap),
			Y:      originY,
			W:      track.ImageWidth,
			H:      track.ImageHeight,
			FocalX: focal,
		})
	}
	return layouts
}

// Draw 绘制轨道，跳过完全在视口外的图片
func (s *TrackRenderSystem) Draw(screen *ebiten.Image) {
	for _, tile := range s.Layout() {
		if tile.X+tile.W < 0 || tile.X > s.viewportWidth {
			continue
		}
		sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, tile.Entity)
		if !ok || sprite.Image == nil {
			continue
		}
		utils.DrawCover(screen, sprite.Image, tile.X, tile.Y, tile.W, tile.H, tile.FocalX, 50)
	}
}
