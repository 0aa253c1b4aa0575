package components

import "github.com/hajimehoshi/ebiten/v2"

// SpriteComponent 存储图片实体的源图像
// 绘制时按 object-fit: cover 裁剪到 ImageComponent 的尺寸
type SpriteComponent struct {
	Image *ebiten.Image
}
