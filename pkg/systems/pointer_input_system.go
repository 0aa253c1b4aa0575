package systems

import (
	"github.com/gonewx/carousel/pkg/utils"
)

// PointerHandler 指针事件接收方
// carousel.Controller 实现此接口
type PointerHandler interface {
	OnPointerDown(x float64)
	OnPointerMove(x float64)
	OnPointerUp()
}

// PointerInputSystem 将鼠标/触摸输入转发给 PointerHandler
// 鼠标和触摸共用同一套处理逻辑，触摸取主触摸点
type PointerInputSystem struct {
	tracker *utils.PointerTracker
	sample  func() utils.PointerSample
	handler PointerHandler
}

// NewPointerInputSystem 创建输入系统，默认从 ebiten 采样
func NewPointerInputSystem(handler PointerHandler) *PointerInputSystem {
	return &PointerInputSystem{
		tracker: utils.NewPointerTracker(),
		sample:  utils.SamplePointer,
		handler: handler,
	}
}

// SetSampler 替换采样函数（测试或回放使用）
func (s *PointerInputSystem) SetSampler(fn func() utils.PointerSample) {
	s.sample = fn
}

// Update 采样并分发本帧事件
// 返回分发的事件数量
func (s *PointerInputSystem) Update() int {
	events := s.tracker.Update(s.sample())
	for _, e := range events {
		switch e.Kind {
		case utils.PointerDown:
			s.handler.OnPointerDown(float64(e.X))
		case utils.PointerMove:
			s.handler.OnPointerMove(float64(e.X))
		case utils.PointerUp:
			s.handler.OnPointerUp()
		}
	}
	return len(events)
}
