// Package arithmetic 实现"Cálculo Mental"心算游戏的核心逻辑
//
// 练习是形如 "3,+2,-1,+4,-2" 的运算序列：首项为初始值，其余项
// 带运算符前缀，严格从左到右求值（无运算符优先级）。
package arithmetic

import (
	"fmt"
	"strconv"
	"strings"
)

// SequenceParts 把运算序列拆成逐项展示的片段
func SequenceParts(operation string) []string {
	raw := strings.Split(operation, ",")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// EvaluateSequence 从左到右求值一个运算序列
//
// 支持 +、-、× 和 ÷（也接受 ASCII 的 * 和 /）。除法必须整除，
// 否则视为题库数据错误。例："3,+2,-1,+4,-2" → 6。
func EvaluateSequence(operation string) (int, error) {
	parts := SequenceParts(operation)
	if len(parts) == 0 {
		return 0, fmt.Errorf("secuencia vacía")
	}

	acc, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("valor inicial inválido %q: %w", parts[0], err)
	}

	for _, part := range parts[1:] {
		if len(part) < 2 {
			return 0, fmt.Errorf("término inválido %q", part)
		}
		op, rest := part[:1], part[1:]
		// × 和 ÷ 是多字节字符
		if strings.HasPrefix(part, "×") {
			op, rest = "×", strings.TrimPrefix(part, "×")
		} else if strings.HasPrefix(part, "÷") {
			op, rest = "÷", strings.TrimPrefix(part, "÷")
		}

		operand, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return 0, fmt.Errorf("operando inválido en %q: %w", part, err)
		}

		switch op {
		case "+":
			acc += operand
		case "-":
			acc -= operand
		case "×", "*":
			acc *= operand
		case "÷", "/":
			if operand == 0 {
				return 0, fmt.Errorf("división entre cero en %q", part)
			}
			if acc%operand != 0 {
				return 0, fmt.Errorf("división no exacta en %q", part)
			}
			acc /= operand
		default:
			return 0, fmt.Errorf("operador desconocido en %q", part)
		}
	}

	return acc, nil
}
