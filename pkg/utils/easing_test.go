package utils

import (
	"math"
	"testing"
)

// TestEaseOutQuad 测试二次缓出函数
func TestEaseOutQuad(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.75}, // 1 - 0.5²
		{"前段", 0.25, 0.4375},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseOutQuad(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseOutQuad(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}

	// 缓出曲线全程领先或等于线性进度
	t.Run("整体快于线性", func(t *testing.T) {
		for p := 0.0; p <= 1.0; p += 0.1 {
			if EaseOutQuad(p) < p-0.001 {
				t.Errorf("EaseOutQuad(%v) 不应该落后于线性值", p)
			}
		}
	})
}

// TestEaseInOutCubic 测试三次缓入缓出函数
func TestEaseInOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"中点", 0.5, 0.5},
		{"终点", 1.0, 1.0},
		{"前段", 0.25, 0.0625}, // 4 * 0.25³
		{"后段", 0.75, 0.9375}, // 1 - (2-1.5)³/2
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseInOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseInOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}

	// 单调不减
	t.Run("单调性", func(t *testing.T) {
		prev := -1.0
		for p := 0.0; p <= 1.0; p += 0.05 {
			v := EaseInOutCubic(p)
			if v < prev {
				t.Fatalf("EaseInOutCubic 在 %v 处下降: %v < %v", p, v, prev)
			}
			prev = v
		}
	})
}

// TestLerp 测试线性插值函数
func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a        float64
		b        float64
		t        float64
		expected float64
	}{
		{"起点", 0.0, 100.0, 0.0, 0.0},
		{"中点", 0.0, 100.0, 0.5, 50.0},
		{"终点", 0.0, 100.0, 1.0, 100.0},
		{"负数范围", -50.0, 50.0, 0.5, 0.0},
		{"逆向范围", 100.0, 0.0, 0.5, 50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Lerp(tt.a, tt.b, tt.t)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, result, tt.expected)
			}
		})
	}
}

// TestDriftAnimation 测试缓动与插值结合的漂移动画
// 模拟装饰图标从锚点向外漂移的实际使用场景
func TestDriftAnimation(t *testing.T) {
	anchorX, anchorY := 120.0, 80.0
	driftX, driftY := 14.0, -10.0

	for _, progress := range []float64{0.0, 0.25, 0.5, 0.75, 1.0} {
		eased := EaseInOutCubic(progress)
		x := anchorX + Lerp(0, driftX, eased)
		y := anchorY + Lerp(0, driftY, eased)

		if progress == 0.0 && (math.Abs(x-anchorX) > 0.001 || math.Abs(y-anchorY) > 0.001) {
			t.Errorf("进度 0 时应该在锚点, 实际: (%v, %v)", x, y)
		}
		if progress == 1.0 {
			if math.Abs(x-(anchorX+driftX)) > 0.001 || math.Abs(y-(anchorY+driftY)) > 0.001 {
				t.Errorf("进度 1 时应该在漂移终点, 实际: (%v, %v)", x, y)
			}
		}
		if x < anchorX-0.001 || x > anchorX+driftX+0.001 {
			t.Errorf("X 坐标 %v 超出漂移范围", x)
		}
		if y > anchorY+0.001 || y < anchorY+driftY-0.001 {
			t.Errorf("Y 坐标 %v 超出漂移范围", y)
		}
	}
}

// TestDialogFadeIn 测试对话框遮罩淡入曲线
// 不透明度随进度单调上升且不越界
func TestDialogFadeIn(t *testing.T) {
	const maxAlpha = 160.0

	prev := -1.0
	for p := 0.0; p <= 1.0; p += 0.1 {
		alpha := maxAlpha * EaseOutQuad(p)
		if alpha < prev-0.001 {
			t.Fatalf("淡入在进度 %v 处倒退: %v < %v", p, alpha, prev)
		}
		if alpha < -0.001 || alpha > maxAlpha+0.001 {
			t.Errorf("不透明度 %v 超出 [0, %v]", alpha, maxAlpha)
		}
		prev = alpha
	}

	if final := maxAlpha * EaseOutQuad(1.0); math.Abs(final-maxAlpha) > 0.001 {
		t.Errorf("淡入结束不透明度 %v, 期望 %v", final, maxAlpha)
	}
}
