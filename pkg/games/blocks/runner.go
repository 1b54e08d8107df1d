package blocks

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Solution 玩家拼出的解法程序（外部编辑器生成的不透明函数）
type Solution func(inputs ...interface{}) (interface{}, error)

// Verdict 一次验证的结论
type Verdict struct {
	// Passed 全部用例是否通过
	Passed bool
	// FailedCase 首个失败用例的序号（从 0 开始，通过时为 -1）
	FailedCase int
	// Expected / Actual 失败用例的期望值与实际值（规范化 JSON）
	Expected string
	Actual   string
	// Detail 失败说明（运行错误/panic 的信息也收在这里）
	Detail string
}

// Run 按顺序执行全部测试用例
//
// 值比较使用规范化 JSON 编码（数值/列表/映射跨类型一致）。
// 在第一个失败用例处停止并报告期望值与实际值。玩家代码的
// error 和 panic 都按"解法不正确"处理，从不作为系统错误上抛。
func Run(challenge Challenge, solution Solution) Verdict {
	for i, tc := range challenge.Cases {
		actual, err := runCase(solution, tc.Inputs)
		if err != nil {
			return Verdict{
				Passed:     false,
				FailedCase: i,
				Expected:   canonical(tc.Expected),
				Detail:     fmt.Sprintf("el programa falló: %v", err),
			}
		}

		want := canonical(tc.Expected)
		got := canonical(actual)
		if want != got {
			return Verdict{
				Passed:     false,
				FailedCase: i,
				Expected:   want,
				Actual:     got,
				Detail:     fmt.Sprintf("caso %d: se esperaba %s y se obtuvo %s", i+1, want, got),
			}
		}
	}
	return Verdict{Passed: true, FailedCase: -1}
}

// runCase 执行单个用例，把 panic 转成 error
func runCase(solution Solution, inputs []interface{}) (actual interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pánico en el programa: %v", r)
		}
	}()
	return solution(inputs...)
}

// canonical 规范化 JSON 编码
//
// json.Marshal 对 map 键排序，不同来源（YAML 题库 vs 玩家程序）
// 的等价值编码结果一致。编码失败的值不可能相等，返回占位符。
func canonical(v interface{}) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("<no serializable: %v>", err)
	}
	return string(bytes.TrimSpace(buf.Bytes()))
}
