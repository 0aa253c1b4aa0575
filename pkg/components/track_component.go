package components

// TrackComponent 图片轨道（横向滚动容器）
//
// 轨道左边缘位于视口水平中心，纵向居中；
// 水平偏移以轨道自身宽度的百分比表示（见 TransitionComponent）。
type TrackComponent struct {
	// ImageWidth, ImageHeight 每张图片的显示尺寸（像素）
	ImageWidth  float64
	ImageHeight float64

	// Gap 相邻图片的间距（像素）
	Gap float64
}

// Width 返回包含 n 张图片时的轨道宽度
func (t *TrackComponent) Width(n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n)*t.ImageWidth + float64(n-1)*t.Gap
}
