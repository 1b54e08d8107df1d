package cipher

import (
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// Phrase 一条待解密的短语
type Phrase struct {
	// Text 原文（玩家要还原的答案）
	Text string `yaml:"text"`
	// Hint 可选提示
	Hint string `yaml:"hint,omitempty"`
}

// Encrypted 返回该短语的密文
func (p Phrase) Encrypted() string {
	return Encrypt(p.Text)
}

// Bank 短语库
type Bank struct {
	Phrases []Phrase `yaml:"phrases"`
}

// LoadBank 从文件系统加载短语库
func LoadBank(fsys fs.FS, path string) (*Bank, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("leer banco de frases %q: %w", path, err)
	}

	var bank Bank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("parsear banco de frases %q: %w", path, err)
	}
	if err := bank.Validate(); err != nil {
		return nil, fmt.Errorf("banco de frases %q: %w", path, err)
	}
	return &bank, nil
}

// Validate 校验短语库：非空且每条短语有原文
func (b *Bank) Validate() error {
	if len(b.Phrases) == 0 {
		return fmt.Errorf("sin frases")
	}
	for i, p := range b.Phrases {
		if strings.TrimSpace(p.Text) == "" {
			return fmt.Errorf("frase %d vacía", i)
		}
	}
	return nil
}
