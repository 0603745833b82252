package components

// TimerComponent 一次性计时器组件
// 用于需要时间延迟的行为（如开始实验后延迟显示第一步）
type TimerComponent struct {
	Name        string  // 计时器名称，如 "first_step"
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒）
	IsReady     bool    // 计时器是否已完成

	// OnReady 完成时调用一次
	OnReady func()
}
