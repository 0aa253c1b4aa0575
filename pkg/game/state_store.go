package game

import (
	"fmt"
	"log"

	"github.com/gonewx/carousel/pkg/carousel"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
const (
	stateObject   = "track"
	stateProperty = "state"
)

// storedState 存储格式
type storedState struct {
	carousel.State `yaml:",inline"`
	Fullscreen     bool `yaml:"fullscreen"`
}

// StateStore 轨道状态存储
// 负责在多次运行之间保存轨道的滚动位置和窗口偏好
type StateStore struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	state        carousel.State
	fullscreen   bool
}

// NewStateStore 创建新的状态存储实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存状态）
//
// 返回：
//   - *StateStore: 状态存储实例（加载失败时使用起点状态，不影响创建）
func NewStateStore(gdataManager *gdata.Manager) *StateStore {
	ss := &StateStore{gdataManager: gdataManager}

	if err := ss.Load(); err != nil {
		// 加载失败不是致命错误，从轨道起点开始
		log.Printf("[StateStore] Warning: Failed to load track state: %v (starting at 0)", err)
	}
	return ss
}

// Load 从 gdata 加载状态
//
// 反序列化失败时状态保持为 0（轨道起点）；NaN 同样视为 0。
//
// 返回：
//   - error: 如果读取或反序列化失败返回错误
func (ss *StateStore) Load() error {
	ss.state = carousel.State{}
	ss.fullscreen = false

	if ss.gdataManager == nil {
		return nil
	}
	if !ss.gdataManager.ObjectPropExists(stateObject, stateProperty) {
		return nil
	}

	data, err := ss.gdataManager.LoadObjectProp(stateObject, stateProperty)
	if err != nil {
		return fmt.Errorf("failed to load track state: %w", err)
	}

	stored, err := decodeState(data)
	if err != nil {
		return err
	}

	ss.state = carousel.State{
		Percentage:     zeroIfNaN(stored.Percentage),
		PrevPercentage: zeroIfNaN(stored.PrevPercentage),
	}
	ss.fullscreen = stored.Fullscreen
	log.Printf("[StateStore] Track state loaded: %+v", ss.state)
	return nil
}

// Save 保存状态到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (ss *StateStore) Save() error {
	if ss.gdataManager == nil {
		return nil
	}

	data, err := encodeState(ss.state, ss.fullscreen)
	if err != nil {
		return err
	}

	if err := ss.gdataManager.SaveObjectProp(stateObject, stateProperty, data); err != nil {
		return fmt.Errorf("failed to save track state: %w", err)
	}

	log.Printf("[StateStore] Track state saved: %+v", ss.state)
	return nil
}

// State 返回当前轨道状态
func (ss *StateStore) State() carousel.State {
	return ss.state
}

// SetState 更新轨道状态（仅内存，需调用 Save 持久化）
func (ss *StateStore) SetState(s carousel.State) {
	ss.state = s
}

// Fullscreen 返回是否以全屏启动
func (ss *StateStore) Fullscreen() bool {
	return ss.fullscreen
}

// SetFullscreen 设置全屏偏好（仅内存，需调用 Save 持久化）
func (ss *StateStore) SetFullscreen(enabled bool) {
	ss.fullscreen = enabled
}

// Reset 回到轨道起点（仅内存，需调用 Save 持久化）
func (ss *StateStore) Reset() {
	ss.state = carousel.State{}
}

func encodeState(s carousel.State, fullscreen bool) ([]byte, error) {
	data, err := yaml.Marshal(storedState{State: s, Fullscreen: fullscreen})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal track state: %w", err)
	}
	return data, nil
}

func decodeState(data []byte) (storedState, error) {
	var stored storedState
	if err := yaml.Unmarshal(data, &stored); err != nil {
		return storedState{}, fmt.Errorf("failed to unmarshal track state: %w", err)
	}
	return stored, nil
}

func zeroIfNaN(v float64) float64 {
	if v != v {
		return 0
	}
	return v
}
