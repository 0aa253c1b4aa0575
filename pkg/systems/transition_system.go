package systems

import (
	"github.com/gonewx/carousel/pkg/components"
	"github.com/gonewx/carousel/pkg/ecs"
	"github.com/gonewx/carousel/pkg/utils"
)

// TransitionSystem 推进所有 TransitionComponent
// 过渡结束后保持目标值（fill: forwards）
type TransitionSystem struct {
	entityManager *ecs.EntityManager
	easing        utils.EasingFunc
}

// NewTransitionSystem 创建过渡系统，默认线性缓动
func NewTransitionSystem(em *ecs.EntityManager) *TransitionSystem {
	return &TransitionSystem{
		entityManager: em,
		easing:        utils.EaseLinear,
	}
}

// SetEasing 设置缓动函数，nil 表示线性
func (s *TransitionSystem) SetEasing(fn utils.EasingFunc) {
	if fn == nil {
		fn = utils.EaseLinear
	}
	s.easing = fn
}

// Update 推进过渡
// 返回仍在过渡中的组件数量
func (s *TransitionSystem) Update(dt float64) int {
	active := 0
	for _, id := range ecs.GetEntitiesWith1[*components.TransitionComponent](s.entityManager) {
		tc, ok := ecs.GetComponent[*components.TransitionComponent](s.entityManager, id)
		if !ok || !tc.Active {
			continue
		}

		tc.Elapsed += dt
		if tc.Elapsed >= tc.Duration {
			tc.Value = tc.To
			tc.Elapsed = tc.Duration
			tc.Active = false
			continue
		}

		tc.Value = utils.Lerp(tc.From, tc.To, s.easing(tc.Progress()))
		active++
	}
	return active
}
