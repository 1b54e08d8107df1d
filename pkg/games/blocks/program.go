package blocks

import "fmt"

// BlockKind 积木种类
type BlockKind string

const (
	// BlockTake 取某个输入作为累加器当前值
	BlockTake BlockKind = "tomar"
	// BlockAdd 累加器加上某个输入
	BlockAdd BlockKind = "sumar"
	// BlockSub 累加器减去某个输入
	BlockSub BlockKind = "restar"
	// BlockMul 累加器乘以某个输入
	BlockMul BlockKind = "multiplicar"
	// BlockDiv 累加器除以某个输入
	BlockDiv BlockKind = "dividir"
	// BlockNegate 累加器取负（不消耗输入）
	BlockNegate BlockKind = "negar"
	// BlockDouble 累加器翻倍（不消耗输入）
	BlockDouble BlockKind = "duplicar"
)

// UsesInput 报告该积木种类是否引用一个输入槽
func (k BlockKind) UsesInput() bool {
	switch k {
	case BlockNegate, BlockDouble:
		return false
	}
	return true
}

// Block 程序中的一个积木：操作 + 引用的输入槽（从 0 开始）
type Block struct {
	Kind  BlockKind
	Input int
}

// Label 返回积木的展示文字
func (b Block) Label() string {
	if b.Kind.UsesInput() {
		return fmt.Sprintf("%s entrada %d", string(b.Kind), b.Input+1)
	}
	return string(b.Kind)
}

// Program 积木程序：按顺序作用在累加器上的积木序列
//
// 这是积木编辑器协作者的桌面端实现：玩家从面板拼出序列，
// Compile 把它编译成可提交给 Run 的求解函数。
type Program struct {
	Blocks []Block
}

// Append 在程序末尾追加一个积木
func (p *Program) Append(b Block) {
	p.Blocks = append(p.Blocks, b)
}

// RemoveLast 移除最后一个积木（程序为空时不做任何事）
func (p *Program) RemoveLast() {
	if len(p.Blocks) > 0 {
		p.Blocks = p.Blocks[:len(p.Blocks)-1]
	}
}

// Clear 清空程序
func (p *Program) Clear() {
	p.Blocks = nil
}

// Empty 报告程序是否为空
func (p Program) Empty() bool {
	return len(p.Blocks) == 0
}

// Compile 把积木序列编译成求解函数
//
// 语义：累加器从 0 开始，逐个积木作用。输入越界、非数值输入和
// 除零都作为普通错误返回，由 Run 判定为"程序错误"而非系统故障。
func (p Program) Compile() Solution {
	blocks := make([]Block, len(p.Blocks))
	copy(blocks, p.Blocks)

	return func(inputs ...interface{}) (interface{}, error) {
		if len(blocks) == 0 {
			return nil, fmt.Errorf("el programa está vacío")
		}

		acc := 0.0
		for i, b := range blocks {
			var operand float64
			if b.Kind.UsesInput() {
				if b.Input < 0 || b.Input >= len(inputs) {
					return nil, fmt.Errorf("el bloque %d usa la entrada %d pero solo hay %d", i+1, b.Input+1, len(inputs))
				}
				var err error
				operand, err = toNumber(inputs[b.Input])
				if err != nil {
					return nil, fmt.Errorf("entrada %d: %w", b.Input+1, err)
				}
			}

			switch b.Kind {
			case BlockTake:
				acc = operand
			case BlockAdd:
				acc += operand
			case BlockSub:
				acc -= operand
			case BlockMul:
				acc *= operand
			case BlockDiv:
				if operand == 0 {
					return nil, fmt.Errorf("división entre cero en el bloque %d", i+1)
				}
				acc /= operand
			case BlockNegate:
				acc = -acc
			case BlockDouble:
				acc *= 2
			default:
				return nil, fmt.Errorf("bloque desconocido %q", string(b.Kind))
			}
		}
		return acc, nil
	}
}

// toNumber 把 YAML 反序列化出的标量统一成 float64
func toNumber(v interface{}) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("el valor %v no es numérico", v)
	}
}
