package entities

import (
	"github.com/gonewx/carousel/pkg/components"
	"github.com/gonewx/carousel/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// NewTrackEntity 创建轨道实体
//
// 参数：
//   - em: 实体管理器
//   - imageWidth, imageHeight: 每张图片的显示尺寸
//   - gap: 图片间距
//   - percentage: 初始偏移百分比
//
// 返回：
//   - 轨道实体ID
func NewTrackEntity(em *ecs.EntityManager, imageWidth, imageHeight, gap, percentage float64) ecs.EntityID {
	entity := em.CreateEntity()

	ecs.AddComponent(em, entity, &components.TrackComponent{
		ImageWidth:  imageWidth,
		ImageHeight: imageHeight,
		Gap:         gap,
	})
	ecs.AddComponent(em, entity, &components.TransitionComponent{
		Property: components.PropertyTranslateX,
		From:     percentage,
		To:       percentage,
		Value:    percentage,
	})

	return entity
}

// NewImageEntity 创建轨道中的图片实体
//
// 参数：
//   - em: 实体管理器
//   - track: 所属轨道实体
//   - index: 在轨道中的序号
//   - img: 源图像
//   - source: 图片来源路径（占位图为空）
//   - percentage: 轨道当前偏移百分比，焦点初始化为 100 + percentage
//
// 返回：
//   - 图片实体ID
func NewImageEntity(em *ecs.EntityManager, track ecs.EntityID, index int, img *ebiten.Image, source string, percentage float64) ecs.EntityID {
	entity := em.CreateEntity()
	focal := 100 + percentage

	ecs.AddComponent(em, entity, &components.ImageComponent{
		Track:  track,
		Index:  index,
		Source: source,
	})
	ecs.AddComponent(em, entity, &components.SpriteComponent{Image: img})
	ecs.AddComponent(em, entity, &components.TransitionComponent{
		Property: components.PropertyObjectPositionX,
		From:     focal,
		To:       focal,
		Value:    focal,
	})

	return entity
}
