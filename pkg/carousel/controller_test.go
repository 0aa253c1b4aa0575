package carousel

import (
	"math"
	"testing"

	"github.com/gonewx/carousel/pkg/scheduler"
)

// recordingRenderer 记录所有投影调用
type recordingRenderer struct {
	calls []float64
}

func (r *recordingRenderer) Render(p float64) {
	r.calls = append(r.calls, p)
}

func (r *recordingRenderer) last() float64 {
	if len(r.calls) == 0 {
		return math.NaN()
	}
	return r.calls[len(r.calls)-1]
}

func newTestController(t *testing.T, viewportWidth float64) (*Controller, *scheduler.FrameScheduler, *recordingRenderer) {
	t.Helper()
	fs := scheduler.NewFrameScheduler()
	r := &recordingRenderer{}
	c, err := NewController(DefaultParams(), viewportWidth, r, fs)
	if err != nil {
		t.Fatalf("NewController() error: %v", err)
	}
	return c, fs, r
}

// drag 模拟一次完整的按下-移动-松开
func drag(c *Controller, from, to float64) {
	c.OnPointerDown(from)
	c.OnPointerMove(to)
	c.OnPointerUp()
}

// TestController_InitialState 测试初始状态
func TestController_InitialState(t *testing.T) {
	c, fs, r := newTestController(t, 1000)

	if c.Percentage() != 0 || c.PrevPercentage() != 0 {
		t.Errorf("initial percentage: got (%v, %v), want (0, 0)", c.Percentage(), c.PrevPercentage())
	}
	if c.IsDragging() {
		t.Error("IsDragging: got true, want false")
	}
	if c.IsAutoScrolling() {
		t.Error("IsAutoScrolling: got true, want false")
	}
	if fs.Pending() != 0 {
		t.Errorf("Pending: got %d, want 0", fs.Pending())
	}
	if len(r.calls) != 0 {
		t.Errorf("render calls: got %d, want 0", len(r.calls))
	}
}

// TestController_InvalidParams 测试无效调参
func TestController_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero step", func(p *Params) { p.StepSize = 0 }},
		{"negative step", func(p *Params) { p.StepSize = -1 }},
		{"NaN step", func(p *Params) { p.StepSize = math.NaN() }},
		{"NaN boundary", func(p *Params) { p.BoundaryPercentage = math.NaN() }},
		{"boundary below range", func(p *Params) { p.BoundaryPercentage = -120 }},
		{"boundary above range", func(p *Params) { p.BoundaryPercentage = 10 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			if _, err := NewController(p, 1000, nil, scheduler.NewFrameScheduler()); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

// TestController_NilRequester 没有帧请求器时无法自动回滚，构造即失败
func TestController_NilRequester(t *testing.T) {
	c, err := NewController(DefaultParams(), 1000, nil, nil)
	if err == nil {
		t.Fatal("NewController(nil requester): expected error, got nil")
	}
	if c != nil {
		t.Errorf("controller: got %v, want nil", c)
	}
}

// TestController_DragScenario 按下 500 拖到 400，视口 1000 → -20
func TestController_DragScenario(t *testing.T) {
	c, _, r := newTestController(t, 1000)

	c.OnPointerDown(500)
	if !c.IsDragging() {
		t.Fatal("IsDragging: got false after OnPointerDown")
	}
	c.OnPointerMove(400)

	if got := c.Percentage(); got != -20 {
		t.Errorf("Percentage: got %v, want -20", got)
	}
	if got := r.last(); got != -20 {
		t.Errorf("last render: got %v, want -20", got)
	}
	// 拖拽中基准不变
	if c.PrevPercentage() != 0 {
		t.Errorf("PrevPercentage during drag: got %v, want 0", c.PrevPercentage())
	}

	c.OnPointerUp()
	if c.IsDragging() {
		t.Error("IsDragging: got true after OnPointerUp")
	}
	if c.PrevPercentage() != -20 {
		t.Errorf("PrevPercentage after release: got %v, want -20", c.PrevPercentage())
	}
	if c.IsAutoScrolling() {
		t.Error("auto-scroll must not start above the boundary")
	}
}

// TestController_HalfViewportDrag 拖动半个视口宽度移动 ±100 并截断
func TestController_HalfViewportDrag(t *testing.T) {
	const width = 800.0
	half := width / 2

	tests := []struct {
		name  string
		start float64
		dx    float64 // 正值表示向左拖
		want  float64
	}{
		{"left from start", 0, half, -100},
		{"left from -30", -30, half, -100},
		{"right from -100", -100, -half, 0},
		{"right from -30", -30, -half, 0},
		{"right from start", 0, -half, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newTestController(t, width)
			c.Restore(State{Percentage: tt.start, PrevPercentage: tt.start})

			c.OnPointerDown(500)
			c.OnPointerMove(500 - tt.dx)

			if got := c.Percentage(); got != tt.want {
				t.Errorf("Percentage: got %v, want %v", got, tt.want)
			}
		})
	}
}

// TestController_ClampHoldsForLargeDrags 任意拖拽序列下百分比始终在范围内
func TestController_ClampHoldsForLargeDrags(t *testing.T) {
	c, fs, r := newTestController(t, 1000)

	moves := []float64{1e9, -1e9, 3000, -4000, 0, 12345.6, -0.5, math.Inf(1), math.Inf(-1)}
	c.OnPointerDown(500)
	for _, x := range moves {
		c.OnPointerMove(x)
		if p := c.Percentage(); p < -100 || p > 0 {
			t.Fatalf("Percentage %v out of range after move to %v", p, x)
		}
	}
	c.OnPointerUp()

	for i := 0; i < 200; i++ {
		fs.RunFrame()
	}
	for _, p := range r.calls {
		if p < -100 || p > 0 {
			t.Fatalf("rendered percentage %v out of range", p)
		}
	}
}

// TestController_RangeIsFixed 整个视口宽度的拖拽停在两端，起点为 0
func TestController_RangeIsFixed(t *testing.T) {
	c, _, _ := newTestController(t, 1000)
	if got := c.Percentage(); got != MaxPercentage {
		t.Errorf("initial Percentage: got %v, want %v", got, MaxPercentage)
	}

	c.OnPointerDown(1000)
	c.OnPointerMove(0)
	if got := c.Percentage(); got != -100 {
		t.Errorf("left drag: got %v, want -100", got)
	}
	c.OnPointerMove(2000)
	if got := c.Percentage(); got != 0 {
		t.Errorf("right drag: got %v, want 0", got)
	}
}

// TestController_MoveWithoutDragIsNoop 无拖拽会话时移动不生效
func TestController_MoveWithoutDragIsNoop(t *testing.T) {
	c, _, r := newTestController(t, 1000)

	c.OnPointerMove(100)
	if c.Percentage() != 0 {
		t.Errorf("Percentage: got %v, want 0", c.Percentage())
	}
	if len(r.calls) != 0 {
		t.Errorf("render calls: got %d, want 0", len(r.calls))
	}

	drag(c, 500, 400)
	before := c.Percentage()
	c.OnPointerMove(0)
	if c.Percentage() != before {
		t.Errorf("move after release changed percentage: %v -> %v", before, c.Percentage())
	}
}

// TestController_DragStartingAtZero 从 x=0 开始的拖拽是有效拖拽
func TestController_DragStartingAtZero(t *testing.T) {
	c, _, _ := newTestController(t, 1000)

	c.OnPointerDown(0)
	c.OnPointerMove(-100)

	// delta = 0 - (-100) = 100 → -20
	if got := c.Percentage(); got != -20 {
		t.Errorf("Percentage: got %v, want -20", got)
	}
}

// TestController_ZeroViewportIgnoresMoves 视口宽度无效时忽略移动
func TestController_ZeroViewportIgnoresMoves(t *testing.T) {
	c, _, _ := newTestController(t, 0)

	c.OnPointerDown(500)
	c.OnPointerMove(100)
	if c.Percentage() != 0 {
		t.Errorf("Percentage: got %v, want 0", c.Percentage())
	}

	c.SetViewportWidth(1000)
	c.OnPointerMove(400)
	if got := c.Percentage(); got != -20 {
		t.Errorf("Percentage after SetViewportWidth: got %v, want -20", got)
	}
}

// TestController_BoundaryCheck 松手位置决定是否自动回滚
func TestController_BoundaryCheck(t *testing.T) {
	tests := []struct {
		percentage float64
		wantStart  bool
	}{
		{0, false},
		{-50, false},
		{-79.99, false},
		{-80, true},
		{-85, true},
		{-100, true},
	}

	for _, tt := range tests {
		c, _, _ := newTestController(t, 1000)
		c.Restore(State{Percentage: tt.percentage, PrevPercentage: tt.percentage})

		c.OnPointerDown(0)
		c.OnPointerUp()

		if c.IsAutoScrolling() != tt.wantStart {
			t.Errorf("release at %v: IsAutoScrolling = %v, want %v", tt.percentage, c.IsAutoScrolling(), tt.wantStart)
		}
	}
}

// TestController_AutoScrollFrom85 松手于 -85 → 85 步后回到 0
func TestController_AutoScrollFrom85(t *testing.T) {
	c, fs, r := newTestController(t, 1000)
	c.Restore(State{Percentage: -85, PrevPercentage: -85})
	r.calls = nil

	c.OnPointerDown(0)
	c.OnPointerUp()
	if !c.IsAutoScrolling() {
		t.Fatal("auto-scroll should start at -85")
	}

	steps := 0
	for c.IsAutoScrolling() && steps < 1000 {
		fs.RunFrame()
		steps++
		if p := c.Percentage(); p < -85 || p > 0 {
			t.Fatalf("step %d: percentage %v overshoots", steps, p)
		}
	}

	if steps != 85 {
		t.Errorf("steps: got %d, want 85", steps)
	}
	if c.Percentage() != 0 || c.PrevPercentage() != 0 {
		t.Errorf("final state: got (%v, %v), want (0, 0)", c.Percentage(), c.PrevPercentage())
	}
	if r.last() != 0 {
		t.Errorf("final render: got %v, want 0", r.last())
	}
	if len(r.calls) != 85 {
		t.Errorf("render calls: got %d, want 85", len(r.calls))
	}
	if fs.Pending() != 0 {
		t.Errorf("Pending: got %d, want 0 (no reschedule after completion)", fs.Pending())
	}
}

// TestController_AutoScrollStepCount 从 P 出发恰好 ceil(-P) 步
func TestController_AutoScrollStepCount(t *testing.T) {
	for _, start := range []float64{-80, -80.5, -91.25, -99.9, -100} {
		c, fs, _ := newTestController(t, 1000)
		c.Restore(State{Percentage: start, PrevPercentage: start})
		if !c.CheckBoundary() {
			t.Fatalf("CheckBoundary(%v) did not start", start)
		}

		steps := 0
		for c.IsAutoScrolling() && steps < 1000 {
			fs.RunFrame()
			steps++
		}

		want := int(math.Ceil(-start))
		if steps != want {
			t.Errorf("start %v: steps = %d, want %d", start, steps, want)
		}
		if c.Percentage() != 0 {
			t.Errorf("start %v: final percentage = %v, want exactly 0", start, c.Percentage())
		}
	}
}

// TestController_DragCancelsAutoScroll 新拖拽取消自动回滚，旧回调不再修改状态
func TestController_DragCancelsAutoScroll(t *testing.T) {
	c, fs, r := newTestController(t, 1000)
	c.Restore(State{Percentage: -90, PrevPercentage: -90})
	c.CheckBoundary()

	for i := 0; i < 10; i++ {
		fs.RunFrame()
	}
	if got := c.Percentage(); got != -80 {
		t.Fatalf("after 10 steps: got %v, want -80", got)
	}

	c.OnPointerDown(300)
	if c.IsAutoScrolling() {
		t.Fatal("auto-scroll still running after pointer down")
	}
	rendersAtCancel := len(r.calls)

	for i := 0; i < 20; i++ {
		fs.RunFrame()
	}
	if got := c.Percentage(); got != -80 {
		t.Errorf("percentage changed after cancel: got %v, want -80", got)
	}
	if len(r.calls) != rendersAtCancel {
		t.Errorf("renders after cancel: got %d, want %d", len(r.calls), rendersAtCancel)
	}

	// 最后写入的值作为新拖拽的基准
	c.OnPointerMove(350) // 向右 50px → +10
	if got := c.Percentage(); got != -70 {
		t.Errorf("drag base after cancel: got %v, want -70", got)
	}
}

// TestController_CheckBoundaryTwiceKeepsSingleTask 重复触发只保留一个任务
func TestController_CheckBoundaryTwiceKeepsSingleTask(t *testing.T) {
	c, fs, _ := newTestController(t, 1000)
	c.Restore(State{Percentage: -95, PrevPercentage: -95})

	c.CheckBoundary()
	fs.RunFrame()
	c.CheckBoundary()

	if fs.Pending() != 1 {
		t.Errorf("Pending: got %d, want 1", fs.Pending())
	}

	fs.RunFrame()
	if got := c.Percentage(); got != -93 {
		t.Errorf("Percentage: got %v, want -93 (one step per frame)", got)
	}
}

// TestController_RestoreSanitizes 恢复状态时修正非法值
func TestController_RestoreSanitizes(t *testing.T) {
	c, _, r := newTestController(t, 1000)

	c.Restore(State{Percentage: math.NaN(), PrevPercentage: -250})
	if c.Percentage() != 0 {
		t.Errorf("NaN percentage: got %v, want 0", c.Percentage())
	}
	if c.PrevPercentage() != -100 {
		t.Errorf("PrevPercentage: got %v, want -100", c.PrevPercentage())
	}
	if r.last() != 0 {
		t.Errorf("render after restore: got %v, want 0", r.last())
	}

	s := c.State()
	if s.Percentage != 0 || s.PrevPercentage != -100 {
		t.Errorf("State: got %+v", s)
	}
}

// TestController_SetParams 热更新调参
func TestController_SetParams(t *testing.T) {
	c, fs, _ := newTestController(t, 1000)
	c.Restore(State{Percentage: -90, PrevPercentage: -90})

	p := DefaultParams()
	p.StepSize = 10
	if err := c.SetParams(p); err != nil {
		t.Fatalf("SetParams() error: %v", err)
	}

	c.CheckBoundary()
	steps := 0
	for c.IsAutoScrolling() && steps < 100 {
		fs.RunFrame()
		steps++
	}
	if steps != 9 {
		t.Errorf("steps with step size 10: got %d, want 9", steps)
	}

	bad := DefaultParams()
	bad.StepSize = 0
	if err := c.SetParams(bad); err == nil {
		t.Error("SetParams with zero step: expected error")
	}
	if c.Params().StepSize != 10 {
		t.Errorf("params replaced despite error: step = %v", c.Params().StepSize)
	}
}
