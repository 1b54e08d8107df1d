package arithmetic

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// 难度级别
const (
	LevelBasic        = "basico"
	LevelIntermediate = "intermedio"
	LevelAdvanced     = "avanzado"
)

// Exercise 一道心算练习
type Exercise struct {
	// Operation 运算序列，如 "3,+2,-1,+4,-2"
	Operation string `yaml:"operation"`
	// Options 三个备选答案（其一正确）
	Options []int `yaml:"options"`
}

// Answer 返回该练习的正确答案
func (e Exercise) Answer() (int, error) {
	return EvaluateSequence(e.Operation)
}

// Bank 按难度分组的练习题库
type Bank struct {
	Levels map[string][]Exercise `yaml:"levels"`
}

// LoadBank 从文件系统加载题库
func LoadBank(fsys fs.FS, path string) (*Bank, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("leer banco de ejercicios %q: %w", path, err)
	}

	var bank Bank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("parsear banco de ejercicios %q: %w", path, err)
	}
	if err := bank.Validate(); err != nil {
		return nil, fmt.Errorf("banco de ejercicios %q: %w", path, err)
	}
	return &bank, nil
}

// Exercises 返回指定难度的练习，未知难度返回 nil
func (b *Bank) Exercises(level string) []Exercise {
	return b.Levels[level]
}

// Validate 校验题库数据
//
// 每道练习必须可求值，备选答案恰好三个且包含正确答案。
func (b *Bank) Validate() error {
	if len(b.Levels) == 0 {
		return fmt.Errorf("sin niveles")
	}
	for level, exercises := range b.Levels {
		if len(exercises) == 0 {
			return fmt.Errorf("nivel %q sin ejercicios", level)
		}
		for i, ex := range exercises {
			answer, err := ex.Answer()
			if err != nil {
				return fmt.Errorf("nivel %q ejercicio %d: %w", level, i, err)
			}
			if len(ex.Options) != 3 {
				return fmt.Errorf("nivel %q ejercicio %d: %d opciones, deben ser 3", level, i, len(ex.Options))
			}
			found := false
			for _, opt := range ex.Options {
				if opt == answer {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("nivel %q ejercicio %d: la respuesta %d no está entre las opciones", level, i, answer)
			}
		}
	}
	return nil
}
