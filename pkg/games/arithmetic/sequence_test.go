package arithmetic

import "testing"

// TestEvaluateSequence 测试从左到右求值
func TestEvaluateSequence(t *testing.T) {
	tests := []struct {
		operation string
		want      int
	}{
		{"3,+2,-1,+4,-2", 6},
		{"5", 5},
		{"2,×3,+4", 10},
		{"2,+3,×4", 20}, // 从左到右，无优先级
		{"10,÷2,+1", 6},
		{"8,/4,×3", 6},
		{"6,*2", 12},
		{"0,-5,+10", 5},
		{"100,-99", 1},
		{" 3 , +2 , -1 ", 4},
	}

	for _, tt := range tests {
		t.Run(tt.operation, func(t *testing.T) {
			got, err := EvaluateSequence(tt.operation)
			if err != nil {
				t.Fatalf("EvaluateSequence(%q) error: %v", tt.operation, err)
			}
			if got != tt.want {
				t.Errorf("EvaluateSequence(%q) = %d, want %d", tt.operation, got, tt.want)
			}
		})
	}
}

// TestEvaluateSequenceErrors 测试非法序列
func TestEvaluateSequenceErrors(t *testing.T) {
	tests := []struct {
		name      string
		operation string
	}{
		{"空序列", ""},
		{"操作数缺失", "3,+"},
		{"运算符未知", "3,%2"},
		{"除零", "3,÷0"},
		{"除不尽", "7,÷2"},
		{"非数字", "3,+dos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := EvaluateSequence(tt.operation); err == nil {
				t.Errorf("EvaluateSequence(%q) = nil error, want failure", tt.operation)
			}
		})
	}
}

// TestSequenceParts 测试片段拆分
func TestSequenceParts(t *testing.T) {
	parts := SequenceParts("3,+2,-1,+4,-2")
	want := []string{"3", "+2", "-1", "+4", "-2"}
	if len(parts) != len(want) {
		t.Fatalf("parts = %v, want %v", parts, want)
	}
	for i := range want {
		if parts[i] != want[i] {
			t.Errorf("part %d = %q, want %q", i, parts[i], want[i])
		}
	}
}
