// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerSample 某一帧的指针采样
// 同时覆盖鼠标和触摸输入
type PointerSample struct {
	// Pressed 鼠标左键按下或存在活动触摸
	Pressed bool
	// X, Y 指针位置（触摸时为主触摸点）
	X, Y int
	// Touch 本次采样是否来自触摸
	Touch bool
}

// SamplePointer 采样当前帧的指针状态
// 优先检测触摸（取第一个触摸点作为主触摸点），其次鼠标
func SamplePointer() PointerSample {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return PointerSample{Pressed: true, X: x, Y: y, Touch: true}
	}

	x, y := ebiten.CursorPosition()
	return PointerSample{
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		X:       x,
		Y:       y,
	}
}

// PointerEventKind 指针事件类型
type PointerEventKind int

const (
	// PointerDown 按下（鼠标按下 / 触摸开始）
	PointerDown PointerEventKind = iota
	// PointerMove 移动（鼠标移动 / 触摸移动）
	PointerMove
	// PointerUp 释放（鼠标抬起 / 触摸结束）
	PointerUp
)

// String 返回事件类型名称
func (k PointerEventKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	}
	return "unknown"
}

// PointerEvent 指针边沿事件
type PointerEvent struct {
	Kind  PointerEventKind
	X, Y  int
	Touch bool
}

// PointerTracker 将逐帧采样转换为按下/移动/释放事件
//
// 与浏览器的事件模型一致：鼠标未按下时的移动也会产生 PointerMove，
// 由接收方决定是否忽略。触摸没有悬停状态，只在按下期间产生移动事件。
type PointerTracker struct {
	last    PointerSample
	started bool
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{}
}

// Update 输入本帧采样，返回本帧产生的事件（按发生顺序）
func (pt *PointerTracker) Update(s PointerSample) []PointerEvent {
	var events []PointerEvent

	if !pt.started {
		pt.started = true
		if s.Pressed {
			events = append(events, PointerEvent{Kind: PointerDown, X: s.X, Y: s.Y, Touch: s.Touch})
		}
		pt.last = s
		return events
	}

	prev := pt.last
	switch {
	case !prev.Pressed && s.Pressed:
		events = append(events, PointerEvent{Kind: PointerDown, X: s.X, Y: s.Y, Touch: s.Touch})

	case prev.Pressed && !s.Pressed:
		// 触摸结束时没有位置，沿用最后一次触摸位置
		x, y := s.X, s.Y
		if prev.Touch {
			x, y = prev.X, prev.Y
		}
		events = append(events, PointerEvent{Kind: PointerUp, X: x, Y: y, Touch: prev.Touch})

	case s.X != prev.X || s.Y != prev.Y:
		if s.Pressed || !s.Touch {
			events = append(events, PointerEvent{Kind: PointerMove, X: s.X, Y: s.Y, Touch: s.Touch})
		}
	}

	pt.last = s
	return events
}

// IsPressed 返回最近一次采样是否处于按下状态
func (pt *PointerTracker) IsPressed() bool {
	return pt.last.Pressed
}

// Reset 重置跟踪状态
func (pt *PointerTracker) Reset() {
	pt.last = PointerSample{}
	pt.started = false
}
