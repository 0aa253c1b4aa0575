package utils

import "math"

// Easing Functions (缓动函数)
//
// 缓动函数用于控制过渡的速度曲线。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
//
// 参考：https://easings.net/

// EasingFunc 缓动函数类型
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
// 与 Web Animations 的默认缓动一致
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInCubic 三次方缓入
// 公式：f(t) = t³
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseInOutCubic 三次方缓入缓出
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EasingByName 根据配置名称返回缓动函数
// 支持 "linear"、"easeIn"、"easeOut"、"easeInOut"；未知名称返回 false
func EasingByName(name string) (EasingFunc, bool) {
	switch name {
	case "", "linear":
		return EaseLinear, true
	case "easeIn":
		return EaseInCubic, true
	case "easeOut":
		return EaseOutCubic, true
	case "easeInOut":
		return EaseInOutCubic, true
	}
	return nil, false
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
