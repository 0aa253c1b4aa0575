// Package carousel 实现可拖拽的横向图片轨道控制器
//
// Controller 把指针/触摸的横向拖拽换算为轨道的滚动百分比（[-100, 0]，0 为起点），
// 并在用户松手时若已滚动到末端附近，逐帧自动回滚到起点。
//
// 控制器本身不直接绘制，也不持有定时器：
//   - 绘制通过 Renderer 接口投影到轨道和图片上
//   - 自动回滚通过 scheduler.Requester 按帧调度
//
// 所有方法都必须在游戏循环所在的 goroutine 中调用。
package carousel

import (
	"errors"
	"log"

	"github.com/gonewx/carousel/pkg/scheduler"
)

// Renderer 将百分比投影到轨道和图片上
// 实现必须对同一百分比幂等，且不能失败
type Renderer interface {
	Render(percentage float64)
}

// RendererFunc 函数适配器
type RendererFunc func(percentage float64)

// Render 实现 Renderer 接口
func (f RendererFunc) Render(percentage float64) {
	f(percentage)
}

// State 控制器的可持久化状态
type State struct {
	Percentage     float64 `yaml:"percentage"`
	PrevPercentage float64 `yaml:"prevPercentage"`
}

// Controller 轨道控制器
type Controller struct {
	params   Params
	renderer Renderer

	percentage     float64 // 当前滚动百分比
	prevPercentage float64 // 本次拖拽开始时的基准百分比
	mouseDownAt    float64 // 本次拖拽按下的 X 坐标
	dragging       bool    // 是否处于拖拽会话中

	viewportWidth float64

	autoScroll *scheduler.Task
}

// NewController 创建轨道控制器
//
// 参数：
//   - params: 调参，无效时返回错误
//   - viewportWidth: 视口宽度（像素），拖动半个视口宽度对应 100%
//   - renderer: 百分比投影，可为 nil（仅计算状态）
//   - requester: 帧回调请求器，用于自动回滚，不能为 nil
func NewController(params Params, viewportWidth float64, renderer Renderer, requester scheduler.Requester) (*Controller, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, errors.New("carousel: nil frame requester")
	}
	if renderer == nil {
		renderer = RendererFunc(func(float64) {})
	}
	return &Controller{
		params:         params,
		renderer:       renderer,
		percentage:     MaxPercentage,
		prevPercentage: MaxPercentage,
		viewportWidth:  viewportWidth,
		autoScroll:     scheduler.NewTask("auto-scroll", requester),
	}, nil
}

// OnPointerDown 开始拖拽会话
//
// 若自动回滚正在进行，立即取消；它最后写入的百分比作为新拖拽的基准。
func (c *Controller) OnPointerDown(x float64) {
	if x != x {
		x = 0
	}
	c.mouseDownAt = x
	c.dragging = true

	if c.autoScroll.Running() {
		c.autoScroll.Cancel()
		c.prevPercentage = c.percentage
		log.Printf("[Carousel] 拖拽开始，取消自动回滚 (percentage=%.2f)", c.percentage)
	}
}

// OnPointerUp 结束拖拽会话并执行边界检查
func (c *Controller) OnPointerUp() {
	c.dragging = false
	c.mouseDownAt = 0
	c.prevPercentage = c.percentage
	c.CheckBoundary()
}

// OnPointerMove 拖拽中移动指针
//
// 向左拖动半个视口宽度对应 -100%，超出范围的拖动被静默截断。
// 没有拖拽会话或视口宽度无效时不做任何事。
func (c *Controller) OnPointerMove(x float64) {
	if !c.dragging || !(c.viewportWidth > 0) || x != x {
		return
	}

	delta := c.mouseDownAt - x
	maxDelta := c.viewportWidth / 2

	next := Clamp(c.prevPercentage + (delta/maxDelta)*-100)
	c.percentage = next
	c.renderer.Render(next)
}

// CheckBoundary 松手时检查是否需要自动回滚
// 返回是否启动了自动回滚
func (c *Controller) CheckBoundary() bool {
	if c.percentage > c.params.BoundaryPercentage {
		return false
	}
	log.Printf("[Carousel] percentage=%.2f 到达边界 %.2f，开始自动回滚",
		c.percentage, c.params.BoundaryPercentage)
	c.autoScroll.Start(c.autoScrollStep)
	return true
}

// autoScrollStep 自动回滚的单帧步进
// 返回 true 表示需要下一帧继续
func (c *Controller) autoScrollStep() bool {
	next := c.percentage + c.params.StepSize

	if next >= MaxPercentage {
		c.percentage = MaxPercentage
		c.prevPercentage = MaxPercentage
		c.renderer.Render(c.percentage)
		log.Printf("[Carousel] 自动回滚完成 (%d 步)", c.autoScroll.Steps())
		return false
	}

	c.percentage = next
	c.renderer.Render(next)
	return true
}

// SetViewportWidth 更新视口宽度（窗口尺寸变化时调用）
func (c *Controller) SetViewportWidth(width float64) {
	c.viewportWidth = width
}

// SetParams 替换调参（配置热重载）
// 正在进行的自动回滚在下一步开始使用新的步长。
func (c *Controller) SetParams(params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	c.params = params
	return nil
}

// Restore 恢复持久化状态并重新投影
// 超出范围或 NaN 的值被修正
func (c *Controller) Restore(s State) {
	c.autoScroll.Cancel()
	c.dragging = false
	c.percentage = Clamp(s.Percentage)
	c.prevPercentage = Clamp(s.PrevPercentage)
	c.renderer.Render(c.percentage)
}

// State 返回当前可持久化状态
func (c *Controller) State() State {
	return State{
		Percentage:     c.percentage,
		PrevPercentage: c.prevPercentage,
	}
}

// Percentage 返回当前滚动百分比
func (c *Controller) Percentage() float64 {
	return c.percentage
}

// PrevPercentage 返回拖拽基准百分比
func (c *Controller) PrevPercentage() float64 {
	return c.prevPercentage
}

// IsDragging 返回是否处于拖拽会话中
func (c *Controller) IsDragging() bool {
	return c.dragging
}

// IsAutoScrolling 返回自动回滚是否正在进行
func (c *Controller) IsAutoScrolling() bool {
	return c.autoScroll.Running()
}

// Params 返回当前调参
func (c *Controller) Params() Params {
	return c.params
}
