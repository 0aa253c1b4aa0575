package carousel

import "fmt"

// 百分比范围：轨道起点为 0，末端为 -100
const (
	MinPercentage = -100.0
	MaxPercentage = 0.0
)

// 默认调参常量
const (
	// DefaultStepSize 自动回滚每帧增加的百分比
	DefaultStepSize = 1.0
	// DefaultBoundaryPercentage 松手时触发自动回滚的阈值（轨道最后 20%）
	DefaultBoundaryPercentage = -80.0
)

// Params 控制器调参
type Params struct {
	// StepSize 自动回滚每帧步长（百分比，必须 > 0）
	StepSize float64
	// BoundaryPercentage 松手时 percentage <= 此值则开始自动回滚
	BoundaryPercentage float64
}

// DefaultParams 返回默认调参
func DefaultParams() Params {
	return Params{
		StepSize:           DefaultStepSize,
		BoundaryPercentage: DefaultBoundaryPercentage,
	}
}

// Validate 验证调参
func (p Params) Validate() error {
	if !(p.StepSize > 0) {
		return fmt.Errorf("step size must be positive, got %v", p.StepSize)
	}
	if !(p.BoundaryPercentage >= MinPercentage && p.BoundaryPercentage <= MaxPercentage) {
		return fmt.Errorf("boundary percentage %v out of range [%v, %v]", p.BoundaryPercentage, MinPercentage, MaxPercentage)
	}
	return nil
}

// Clamp 将百分比限制在 [MinPercentage, MaxPercentage] 范围内
// NaN 视为轨道起点
func Clamp(v float64) float64 {
	if v != v {
		return MaxPercentage
	}
	if v < MinPercentage {
		return MinPercentage
	}
	if v > MaxPercentage {
		return MaxPercentage
	}
	return v
}
