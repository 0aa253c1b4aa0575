// Package scheduler 提供基于帧的回调调度
//
// FrameScheduler 在单线程游戏循环中模拟浏览器的 requestAnimationFrame：
// 回调按请求顺序排队，每次 RunFrame() 执行一批。
// 所有方法只能在游戏循环（Update）所在的 goroutine 中调用，不加锁。
package scheduler

// FrameHandle 帧回调句柄，用于取消尚未执行的回调
// 0 为无效句柄
type FrameHandle uint64

// FrameFunc 帧回调函数
type FrameFunc func()

// Requester 帧回调请求接口
// FrameScheduler 实现此接口，测试中可替换为手动驱动的实现
type Requester interface {
	RequestFrame(fn FrameFunc) FrameHandle
	CancelFrame(h FrameHandle)
}

type frameCallback struct {
	handle FrameHandle
	fn     FrameFunc
}

// FrameScheduler 帧回调调度器
type FrameScheduler struct {
	nextHandle uint64
	queue      []frameCallback
	live       map[FrameHandle]struct{} // 已请求且未执行、未取消的句柄
	frame      uint64
}

// NewFrameScheduler 创建帧调度器
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{
		nextHandle: 1, // 句柄从1开始,0保留为无效句柄
		queue:      make([]frameCallback, 0, 8),
		live:       make(map[FrameHandle]struct{}),
	}
}

// RequestFrame 请求在下一帧执行回调
//
// 在 RunFrame 执行期间请求的回调会排到再下一帧，
// 与 requestAnimationFrame 的语义一致。
func (fs *FrameScheduler) RequestFrame(fn FrameFunc) FrameHandle {
	if fn == nil {
		return 0
	}
	h := FrameHandle(fs.nextHandle)
	fs.nextHandle++
	fs.queue = append(fs.queue, frameCallback{handle: h, fn: fn})
	fs.live[h] = struct{}{}
	return h
}

// CancelFrame 取消尚未执行的回调
// 对已执行、已取消或无效的句柄调用是安全的。
// 在 RunFrame 期间取消同一批次中尚未执行的回调同样生效。
func (fs *FrameScheduler) CancelFrame(h FrameHandle) {
	delete(fs.live, h)
}

// RunFrame 执行本帧之前排队的所有回调
// 返回实际执行的回调数量
func (fs *FrameScheduler) RunFrame() int {
	fs.frame++
	if len(fs.queue) == 0 {
		return 0
	}

	// 取出当前批次，回调中新请求的进入下一批
	batch := fs.queue
	fs.queue = make([]frameCallback, 0, cap(batch))

	ran := 0
	for _, cb := range batch {
		if _, ok := fs.live[cb.handle]; !ok {
			continue
		}
		delete(fs.live, cb.handle)
		cb.fn()
		ran++
	}
	return ran
}

// Pending 返回等待执行的回调数量（不含已取消的）
func (fs *FrameScheduler) Pending() int {
	return len(fs.live)
}

// Frame 返回已执行的帧数
func (fs *FrameScheduler) Frame() uint64 {
	return fs.frame
}
