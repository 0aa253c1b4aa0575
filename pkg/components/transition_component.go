package components

// 过渡属性名称
const (
	// PropertyTranslateX 轨道水平偏移（轨道宽度的百分比）
	PropertyTranslateX = "translateX"
	// PropertyObjectPositionX 图片焦点水平位置（object-position 百分比）
	PropertyObjectPositionX = "objectPositionX"
)

// TransitionComponent 单个数值属性的过渡动画
//
// 每次 Retarget 都从当前值出发、在 Duration 秒内过渡到新目标，
// 结束后保持目标值（fill: forwards），不会复位。
type TransitionComponent struct {
	Property string  // 属性名称
	From     float64 // 起始值
	To       float64 // 目标值
	Value    float64 // 当前值
	Elapsed  float64 // 已过时间（秒）
	Duration float64 // 总时长（秒）
	Active   bool    // 是否正在过渡
}

// Retarget 从当前值开始过渡到新目标
// duration <= 0 时立即跳到目标值
func (t *TransitionComponent) Retarget(to, duration float64) {
	if duration <= 0 {
		t.From, t.To, t.Value = to, to, to
		t.Elapsed, t.Duration = 0, 0
		t.Active = false
		return
	}
	t.From = t.Value
	t.To = to
	t.Elapsed = 0
	t.Duration = duration
	t.Active = true
}

// Progress 返回过渡进度 [0, 1]
func (t *TransitionComponent) Progress() float64 {
	if !t.Active || t.Duration <= 0 {
		return 1
	}
	p := t.Elapsed / t.Duration
	if p > 1 {
		return 1
	}
	return p
}
