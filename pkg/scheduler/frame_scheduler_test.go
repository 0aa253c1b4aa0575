package scheduler

import "testing"

// TestFrameScheduler_RunsInRequestOrder 测试回调按请求顺序执行
func TestFrameScheduler_RunsInRequestOrder(t *testing.T) {
	fs := NewFrameScheduler()

	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		fs.RequestFrame(func() { order = append(order, i) })
	}

	if got := fs.Pending(); got != 3 {
		t.Fatalf("Pending: got %d, want 3", got)
	}

	if ran := fs.RunFrame(); ran != 3 {
		t.Errorf("RunFrame: got %d callbacks, want 3", ran)
	}

	want := []int{1, 2, 3}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d]: got %d, want %d", i, order[i], want[i])
		}
	}

	if fs.Pending() != 0 {
		t.Errorf("Pending after run: got %d, want 0", fs.Pending())
	}
}

// TestFrameScheduler_NestedRequestRunsNextFrame 测试帧内请求的回调推迟到下一帧
func TestFrameScheduler_NestedRequestRunsNextFrame(t *testing.T) {
	fs := NewFrameScheduler()

	count := 0
	var tick func()
	tick = func() {
		count++
		fs.RequestFrame(tick)
	}
	fs.RequestFrame(tick)

	for i := 0; i < 5; i++ {
		fs.RunFrame()
	}

	if count != 5 {
		t.Errorf("count: got %d, want 5 (one call per frame)", count)
	}
	if fs.Frame() != 5 {
		t.Errorf("Frame: got %d, want 5", fs.Frame())
	}
}

// TestFrameScheduler_CancelFrame 测试取消回调
func TestFrameScheduler_CancelFrame(t *testing.T) {
	fs := NewFrameScheduler()

	called := false
	h := fs.RequestFrame(func() { called = true })
	if h == 0 {
		t.Fatal("RequestFrame returned invalid handle 0")
	}

	fs.CancelFrame(h)
	fs.RunFrame()

	if called {
		t.Error("cancelled callback was executed")
	}

	// 重复取消、无效句柄都不应 panic
	fs.CancelFrame(h)
	fs.CancelFrame(0)
	fs.CancelFrame(12345)
}

// TestFrameScheduler_CancelWithinSameFrame 测试在同一批次中取消后续回调
func TestFrameScheduler_CancelWithinSameFrame(t *testing.T) {
	fs := NewFrameScheduler()

	var second FrameHandle
	secondCalled := false
	fs.RequestFrame(func() { fs.CancelFrame(second) })
	second = fs.RequestFrame(func() { secondCalled = true })

	if ran := fs.RunFrame(); ran != 1 {
		t.Errorf("RunFrame: got %d callbacks, want 1", ran)
	}
	if secondCalled {
		t.Error("callback cancelled earlier in the same frame was executed")
	}
}

// TestFrameScheduler_NilCallback 测试 nil 回调被忽略
func TestFrameScheduler_NilCallback(t *testing.T) {
	fs := NewFrameScheduler()

	if h := fs.RequestFrame(nil); h != 0 {
		t.Errorf("RequestFrame(nil): got handle %d, want 0", h)
	}
	if fs.Pending() != 0 {
		t.Errorf("Pending: got %d, want 0", fs.Pending())
	}
}
