package components

import "github.com/gonewx/carousel/pkg/ecs"

// ImageComponent 轨道中的一张图片
// 自身没有滚动状态，只通过 TransitionComponent 镜像轨道的偏移
type ImageComponent struct {
	// Track 所属轨道实体
	Track ecs.EntityID

	// Index 在轨道中的序号（从0开始）
	Index int

	// Source 图片来源（配置中的路径，占位图为空）
	Source string
}
