// Package blocks 实现"Bloques"积木编程挑战的核心逻辑
//
// 玩家在外部可视化编辑器里拼出解法，拼好的程序以不透明的
// Solution 函数交给本包的执行器按测试用例验证。
package blocks

import (
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// TestCase 一个挑战的测试用例
type TestCase struct {
	// Inputs 传给解法函数的参数（YAML 标量/列表，类型保留）
	Inputs []interface{} `yaml:"inputs"`
	// Expected 期望的返回值
	Expected interface{} `yaml:"expected"`
}

// Challenge 一个积木编程挑战
type Challenge struct {
	Title        string     `yaml:"title"`
	Description  string     `yaml:"description"`
	Instructions string     `yaml:"instructions"`
	// Difficulty 难度：facil / medio / dificil
	Difficulty string     `yaml:"difficulty"`
	// FunctionName 解法函数在编辑器里的名字（展示用）
	FunctionName string     `yaml:"functionName"`
	Cases        []TestCase `yaml:"cases"`
}

// Bank 挑战库
type Bank struct {
	Challenges []Challenge `yaml:"challenges"`
}

// LoadBank 从文件系统加载挑战库
func LoadBank(fsys fs.FS, path string) (*Bank, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("leer banco de desafíos %q: %w", path, err)
	}

	var bank Bank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("parsear banco de desafíos %q: %w", path, err)
	}
	if err := bank.Validate(); err != nil {
		return nil, fmt.Errorf("banco de desafíos %q: %w", path, err)
	}
	return &bank, nil
}

// Validate 校验挑战库：标题、函数名与用例非空
func (b *Bank) Validate() error {
	if len(b.Challenges) == 0 {
		return fmt.Errorf("sin desafíos")
	}
	for i, c := range b.Challenges {
		if strings.TrimSpace(c.Title) == "" {
			return fmt.Errorf("desafío %d sin título", i)
		}
		if strings.TrimSpace(c.FunctionName) == "" {
			return fmt.Errorf("desafío %q sin nombre de función", c.Title)
		}
		if len(c.Cases) == 0 {
			return fmt.Errorf("desafío %q sin casos de prueba", c.Title)
		}
	}
	return nil
}
