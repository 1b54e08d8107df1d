// Package cipher 实现"Encriptación"替换密码游戏的核心逻辑
//
// 密文规则：西语 27 字母表（Ñ 排在 N 之后）按位置编号，每个字母
// 替换为两位零填充的编号，编号之间以空格连接；原文的空格变成
// 双空格；字母表之外的字符原样保留。
package cipher

import (
	"fmt"
	"strings"
)

// AlphabetES 西语字母表，Ñ 在 N 之后，共 27 个字母
var AlphabetES = []rune("ABCDEFGHIJKLMNÑOPQRSTUVWXYZ")

// letterIndex 字母到编号的映射（大写）
var letterIndex = func() map[rune]int {
	m := make(map[rune]int, len(AlphabetES))
	for i, r := range AlphabetES {
		m[r] = i
	}
	return m
}()

// Encrypt 加密一个短语
//
// "HOLA" → "07 15 11 00"。大小写不敏感（先转大写再编号）。
// 同一个词内的编号以单空格连接，原文空格变成双空格分隔。
func Encrypt(phrase string) string {
	var sb strings.Builder
	needSep := false
	for _, r := range strings.ToUpper(phrase) {
		if r == ' ' {
			sb.WriteString("  ")
			needSep = false
			continue
		}
		if needSep {
			sb.WriteByte(' ')
		}
		if idx, ok := letterIndex[r]; ok {
			fmt.Fprintf(&sb, "%02d", idx)
		} else {
			sb.WriteRune(r)
		}
		needSep = true
	}
	return sb.String()
}

// Judge 判定玩家的解密答案是否正确
//
// 大小写不敏感，忽略首尾空白。
func Judge(answer, phrase string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(phrase))
}
