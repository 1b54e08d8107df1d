package blocks

import (
	"strings"
	"testing"
)

// TestProgramCompileSum 测试"求和"程序通过全部用例
func TestProgramCompileSum(t *testing.T) {
	var p Program
	p.Append(Block{Kind: BlockTake, Input: 0})
	p.Append(Block{Kind: BlockAdd, Input: 1})

	verdict := Run(sumChallenge(), p.Compile())
	if !verdict.Passed {
		t.Fatalf("sum program should pass, got %+v", verdict)
	}
}

// TestProgramBlocks 测试各积木的求值语义
func TestProgramBlocks(t *testing.T) {
	tests := []struct {
		name     string
		blocks   []Block
		inputs   []interface{}
		expected float64
	}{
		{
			"取负",
			[]Block{{Kind: BlockTake, Input: 0}, {Kind: BlockNegate}},
			[]interface{}{7},
			-7,
		},
		{
			"翻倍",
			[]Block{{Kind: BlockTake, Input: 0}, {Kind: BlockDouble}},
			[]interface{}{5},
			10,
		},
		{
			"混合运算",
			[]Block{
				{Kind: BlockTake, Input: 0},
				{Kind: BlockMul, Input: 1},
				{Kind: BlockSub, Input: 2},
			},
			[]interface{}{3, 4, 2},
			10,
		},
		{
			"除法",
			[]Block{{Kind: BlockTake, Input: 0}, {Kind: BlockDiv, Input: 1}},
			[]interface{}{9, 2},
			4.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Program{Blocks: tt.blocks}
			got, err := p.Compile()(tt.inputs...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.(float64) != tt.expected {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

// TestProgramErrors 测试编译后程序的错误路径
func TestProgramErrors(t *testing.T) {
	tests := []struct {
		name    string
		blocks  []Block
		inputs  []interface{}
		wantSub string
	}{
		{"空程序", nil, []interface{}{1}, "vacío"},
		{
			"输入越界",
			[]Block{{Kind: BlockTake, Input: 3}},
			[]interface{}{1, 2},
			"entrada 4",
		},
		{
			"除零",
			[]Block{{Kind: BlockTake, Input: 0}, {Kind: BlockDiv, Input: 1}},
			[]interface{}{5, 0},
			"cero",
		},
		{
			"非数值输入",
			[]Block{{Kind: BlockTake, Input: 0}},
			[]interface{}{"hola"},
			"no es numérico",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Program{Blocks: tt.blocks}
			_, err := p.Compile()(tt.inputs...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantSub)
			}
		})
	}
}

// TestProgramEditing 测试程序编辑操作
func TestProgramEditing(t *testing.T) {
	var p Program
	if !p.Empty() {
		t.Error("new program should be empty")
	}

	p.Append(Block{Kind: BlockTake, Input: 0})
	p.Append(Block{Kind: BlockAdd, Input: 1})
	p.RemoveLast()
	if len(p.Blocks) != 1 {
		t.Errorf("after RemoveLast: %d blocks, want 1", len(p.Blocks))
	}

	p.Clear()
	if !p.Empty() {
		t.Error("Clear should empty the program")
	}
	p.RemoveLast() // 空程序上无效果
}

// TestBlockLabel 测试积木展示文字
func TestBlockLabel(t *testing.T) {
	tests := []struct {
		block Block
		want  string
	}{
		{Block{Kind: BlockAdd, Input: 1}, "sumar entrada 2"},
		{Block{Kind: BlockTake, Input: 0}, "tomar entrada 1"},
		{Block{Kind: BlockNegate}, "negar"},
	}
	for _, tt := range tests {
		if got := tt.block.Label(); got != tt.want {
			t.Errorf("Label() = %q, want %q", got, tt.want)
		}
	}
}
