package utils

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// CoverSourceRect 计算 object-fit: cover 下源图像的可见区域
//
// 源图像等比缩放到刚好覆盖目标区域，溢出部分按 object-position 裁剪：
// posX/posY 为百分比（0 = 左/上对齐，100 = 右/下对齐，50 = 居中）。
//
// 参数：
//   - srcW, srcH: 源图像尺寸
//   - dstW, dstH: 目标区域尺寸
//   - posX, posY: object-position 百分比，超出 [0, 100] 时被截断
//
// 返回：
//   - image.Rectangle: 源图像坐标系中的可见区域
//   - float64: 源像素到目标像素的缩放比例
func CoverSourceRect(srcW, srcH, dstW, dstH, posX, posY float64) (image.Rectangle, float64) {
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return image.Rectangle{}, 0
	}

	scale := math.Max(dstW/srcW, dstH/srcH)

	// 可见区域在源坐标系中的尺寸
	visW := dstW / scale
	visH := dstH / scale

	x0 := (srcW - visW) * clampPercent(posX) / 100
	y0 := (srcH - visH) * clampPercent(posY) / 100

	rect := image.Rect(
		int(math.Floor(x0)),
		int(math.Floor(y0)),
		int(math.Min(srcW, math.Ceil(x0+visW))),
		int(math.Min(srcH, math.Ceil(y0+visH))),
	)
	return rect, scale
}

func clampPercent(p float64) float64 {
	if p != p {
		return 50
	}
	return math.Max(0, math.Min(100, p))
}

// DrawCover 以 object-fit: cover 方式把 src 绘制到 dst 的 (x, y, w, h) 区域
func DrawCover(dst, src *ebiten.Image, x, y, w, h, posX, posY float64) {
	if dst == nil || src == nil {
		return
	}
	b := src.Bounds()
	rect, _ := CoverSourceRect(float64(b.Dx()), float64(b.Dy()), w, h, posX, posY)
	if rect.Empty() {
		return
	}
	sub := src.SubImage(rect.Add(b.Min)).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(rect.Dx()), h/float64(rect.Dy()))
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(sub, op)
}

// NewPlaceholderTile 生成占位图片
//
// 图片未配置路径或加载失败时使用。调用方应传入比显示区域更宽的尺寸，
// 竖条纹让 object-position 的移动清晰可见。
func NewPlaceholderTile(w, h int, base color.RGBA) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	img.Fill(base)

	stripe := color.RGBA{
		R: uint8(math.Min(255, float64(base.R)+40)),
		G: uint8(math.Min(255, float64(base.G)+40)),
		B: uint8(math.Min(255, float64(base.B)+40)),
		A: 255,
	}
	stripeW := float32(w) / 16
	for i := 0; i < 16; i += 2 {
		vector.DrawFilledRect(img, float32(i)*stripeW, 0, stripeW, float32(h), stripe, false)
	}
	return img
}
