package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - font: 字体（为 nil 时不换行，原样返回）
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 按字符逐个测量累积宽度，超宽处断行；单个字符超宽时强制成行。
// 支持西文与重音字符混合文本。
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return []string{textStr}
	}

	if MeasureTextWidth(textStr, font) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	currentLine := ""

	for len(textStr) > 0 {
		r, size := utf8.DecodeRuneInString(textStr)
		char := string(r)

		testLine := currentLine + char
		if MeasureTextWidth(testLine, font) > maxWidth {
			if currentLine == "" {
				// 单个字符就超宽，强制成行
				lines = append(lines, char)
				textStr = textStr[size:]
				continue
			}
			lines = append(lines, strings.TrimSpace(currentLine))
			currentLine = char
		} else {
			currentLine = testLine
		}

		textStr = textStr[size:]
	}

	if currentLine != "" {
		lines = append(lines, strings.TrimSpace(currentLine))
	}
	if len(lines) == 0 {
		lines = []string{textStr}
	}

	return lines
}

// MeasureTextWidth 测量文本宽度，字体为 nil 时返回 0
func MeasureTextWidth(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}
