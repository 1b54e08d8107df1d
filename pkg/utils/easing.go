package utils

// 动画缓动辅助函数，输入进度 t ∈ [0, 1]。
// 装饰漂移走 EaseInOutCubic，对话框淡入走 EaseOutQuad。

// EaseOutQuad 二次缓出：起步快、收尾缓
func EaseOutQuad(t float64) float64 {
	inv := 1 - t
	return 1 - inv*inv
}

// EaseInOutCubic 三次缓入缓出：两端缓、中段快
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	inv := 2 - 2*t
	return 1 - inv*inv*inv/2
}

// Lerp 在 a 与 b 之间按 t 线性插值
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
