package scheduler

import "log"

// StepFunc 任务单步函数
// 返回 true 表示需要在下一帧继续执行，false 表示任务结束
type StepFunc func() bool

// Task 可取消的逐帧重复任务
//
// 同一时刻最多只有一个实例在运行：再次调用 Start 会先取消正在运行的实例。
// 取消后，已排队的旧回调不会再执行；即使旧回调已被取出执行，
// 也会因代次（generation）不匹配而直接返回。
type Task struct {
	name      string
	requester Requester
	handle    FrameHandle
	running   bool
	gen       uint64 // 每次 Start/Cancel 递增，用于识别过期回调
	steps     int
}

// NewTask 创建重复任务
//
// 参数：
//   - name: 任务名称（仅用于日志）
//   - requester: 帧回调请求器
func NewTask(name string, requester Requester) *Task {
	return &Task{
		name:      name,
		requester: requester,
	}
}

// Start 启动任务，第一步在下一帧执行
//
// 若任务已在运行，旧实例会被取消并由新实例替换。
func (t *Task) Start(step StepFunc) {
	if t.running {
		log.Printf("[Task:%s] 已在运行，替换为新实例", t.name)
		t.Cancel()
	}
	t.gen++
	t.running = true
	t.steps = 0
	t.schedule(t.gen, step)
}

func (t *Task) schedule(gen uint64, step StepFunc) {
	t.handle = t.requester.RequestFrame(func() {
		if gen != t.gen || !t.running {
			return
		}
		t.steps++
		if step() && gen == t.gen && t.running {
			t.schedule(gen, step)
			return
		}
		if gen == t.gen {
			t.running = false
			t.handle = 0
		}
	})
}

// Cancel 取消正在运行的任务
// 任务未运行时调用无副作用
func (t *Task) Cancel() {
	if !t.running {
		return
	}
	t.requester.CancelFrame(t.handle)
	t.handle = 0
	t.running = false
	t.gen++
	log.Printf("[Task:%s] 已取消（执行了 %d 步）", t.name, t.steps)
}

// Running 返回任务是否在运行
func (t *Task) Running() bool {
	return t.running
}

// Steps 返回当前（或最近一次）实例已执行的步数
func (t *Task) Steps() int {
	return t.steps
}
