// Package sequencer 实现实验步骤的线性状态机
//
// Sequencer 持有有序的步骤列表与当前步骤索引，只有当前步骤的 flag 能推进状态。
// 过期或重复的推进请求被记录并忽略，不返回错误。
package sequencer

import (
	"log"

	"github.com/decker502/virtuallab/pkg/config"
)

// StepUI 步骤提示界面（指令弹窗）
// Sequencer 在每次状态变化时调用，不关心弹窗动画时序
type StepUI interface {
	// ShowStep 显示步骤弹窗，同时更新顶部步骤横幅
	ShowStep(title, text string)
	// ShowCompletion 显示实验完成弹窗
	ShowCompletion()
	// Hide 隐藏弹窗
	Hide()
	// ShowBanner 更新顶部步骤横幅
	ShowBanner(text string)
}

// State 步骤状态
type State struct {
	CurrentIndex int
	Completed    bool
}

// Sequencer 步骤状态机
type Sequencer struct {
	steps []config.StepDescriptor
	state State
	ui    StepUI

	// OnStepComplete 每次成功推进后调用一次，参数为刚完成的步骤 flag；
	// 最后一步完成时参数为 config.CompleteFlag
	OnStepComplete func(flag string)
}

// New 创建步骤状态机，steps 在内部复制
func New(steps []config.StepDescriptor, ui StepUI) *Sequencer {
	s := &Sequencer{
		steps: append([]config.StepDescriptor(nil), steps...),
		ui:    ui,
	}
	if len(s.steps) == 0 {
		s.state.Completed = true
	}
	return s
}

// Start 显示第一个步骤
func (s *Sequencer) Start() {
	if s.state.Completed {
		log.Printf("[Sequencer] Start called with no remaining steps")
		return
	}
	step := s.steps[s.state.CurrentIndex]
	log.Printf("[Sequencer] Starting at step %s", step.Flag)
	if s.ui != nil {
		s.ui.ShowStep(step.Title, step.Text)
	}
}

// Advance 完成 flag 对应的步骤
// 仅当 flag 等于当前步骤的 flag 时生效，返回是否推进
func (s *Sequencer) Advance(flag string) bool {
	if s.state.Completed {
		log.Printf("[Sequencer] Ignoring %q: experiment already complete", flag)
		return false
	}

	current := s.steps[s.state.CurrentIndex]
	if flag != current.Flag {
		log.Printf("[Sequencer] Ignoring %q: current step is %q", flag, current.Flag)
		return false
	}

	s.state.CurrentIndex++
	log.Printf("[Sequencer] Step %s complete (%d/%d)", flag, s.state.CurrentIndex, len(s.steps))

	if s.state.CurrentIndex < len(s.steps) {
		next := s.steps[s.state.CurrentIndex]
		if s.ui != nil {
			s.ui.ShowStep(next.Title, next.Text)
		}
		s.notify(flag)
		return true
	}

	s.state.Completed = true
	if s.ui != nil {
		s.ui.ShowCompletion()
	}
	s.notify(config.CompleteFlag)
	return true
}

func (s *Sequencer) notify(flag string) {
	if s.OnStepComplete != nil {
		s.OnStepComplete(flag)
	}
}

// Acknowledge 用户确认弹窗（OK 按钮）：隐藏弹窗并把当前步骤文本写入横幅
func (s *Sequencer) Acknowledge() {
	if s.ui == nil {
		return
	}
	s.ui.Hide()
	if step, ok := s.CurrentStep(); ok {
		s.ui.ShowBanner(step.Text)
	}
}

// CurrentStep 返回当前步骤；完成后返回 false
func (s *Sequencer) CurrentStep() (config.StepDescriptor, bool) {
	if s.state.Completed {
		return config.StepDescriptor{}, false
	}
	return s.steps[s.state.CurrentIndex], true
}

// State 返回状态快照
func (s *Sequencer) State() State {
	return s.state
}

// Steps 返回步骤列表副本
func (s *Sequencer) Steps() []config.StepDescriptor {
	return append([]config.StepDescriptor(nil), s.steps...)
}

// ReplaceText 热更新步骤标题与文本
// flag 序列必须与当前完全一致，否则拒绝更新并返回 false
func (s *Sequencer) ReplaceText(steps []config.StepDescriptor) bool {
	if len(steps) != len(s.steps) {
		log.Printf("[Sequencer] Rejecting reload: step count changed %d -> %d", len(s.steps), len(steps))
		return false
	}
	for i := range steps {
		if steps[i].Flag != s.steps[i].Flag {
			log.Printf("[Sequencer] Rejecting reload: step %d flag changed %q -> %q", i, s.steps[i].Flag, steps[i].Flag)
			return false
		}
	}
	copy(s.steps, steps)
	log.Printf("[Sequencer] Reloaded text for %d steps", len(steps))
	return true
}
