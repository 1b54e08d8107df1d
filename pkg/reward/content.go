// Package reward 实现"分阶段 AR 奖励播放"核心
//
// 该包把三个小游戏里重复的 AR 奖励逻辑收敛到一处：
//   - 阶段配置存储（gdata 持久化，兼容旧键名）
//   - 内容归一化（类型推断：Video > Imagen > Audio > Texto）
//   - 场景渲染适配器（挂载/释放生命周期）
//   - 覆盖层呈现器（布局策略、漂浮符号、相机背景）
//   - 阶段播放编排器（启用且有内容才弹出，否则直接放行）
package reward

import "strings"

// ContentKind 阶段内容类型
type ContentKind int

const (
	// KindNone 未配置任何内容
	KindNone ContentKind = iota
	// KindText 文本内容（3D 旋转文字）
	KindText
	// KindImage 图片内容（双面旋转面板）
	KindImage
	// KindAudio 音频内容（脉动音符）
	KindAudio
	// KindVideo 视频内容（发光传送门面板）
	KindVideo
)

// String 返回类型的可读名称（与旧版持久化值一致，西语命名）
func (k ContentKind) String() string {
	switch k {
	case KindText:
		return "Texto"
	case KindImage:
		return "Imagen"
	case KindAudio:
		return "Audio"
	case KindVideo:
		return "Video"
	default:
		return ""
	}
}

// ParseContentKind 解析持久化的类型名称
// 旧版曾使用 "Texto3D" 表示带体积的文字，与 "Texto" 等价。
func ParseContentKind(s string) ContentKind {
	switch s {
	case "Texto", "Texto3D":
		return KindText
	case "Imagen":
		return KindImage
	case "Audio":
		return KindAudio
	case "Video":
		return KindVideo
	default:
		return KindNone
	}
}

// StageContent 单个阶段的原始内容配置
//
// 四个内容字段互不排斥：一个阶段可以同时配置文本和图片。
// Kind 可显式指定（编辑器残留数据时强制只展示一种），为零值时
// 由 Normalize 按优先级推断。
type StageContent struct {
	Text     string      `yaml:"text"`
	ImageRef string      `yaml:"imageUrl"`
	AudioRef string      `yaml:"audioUrl"`
	VideoRef string      `yaml:"videoUrl"`
	Kind     ContentKind `yaml:"-"`

	// KindName 是 Kind 的持久化形式（"Texto"/"Imagen"/...），
	// 为空表示未显式指定。
	KindName string `yaml:"type,omitempty"`
}

// NormalizedContent 归一化后的阶段内容
//
// Has* 布尔值与 Kind 无关，反映原始字段是否非空，
// 供呈现器决定多内容布局（见 layout.go）。
type NormalizedContent struct {
	Kind     ContentKind
	Text     string
	ImageRef string
	AudioRef string
	VideoRef string
	HasText  bool
	HasImage bool
	HasAudio bool
	HasVideo bool
}

// VisualCount 返回可视元素数量（文本/图片/视频，不含音频）
func (n NormalizedContent) VisualCount() int {
	count := 0
	if n.HasText {
		count++
	}
	if n.HasImage {
		count++
	}
	if n.HasVideo {
		count++
	}
	return count
}

// Normalize 归一化阶段内容配置（纯函数，无副作用）
//
// 规则：
//  1. 显式指定的 Kind 优先（即使其它字段也有数据）
//  2. 否则按 Video > Imagen > Audio > Texto 的优先级取第一个非空字段
//  3. 所有字段都为空（或仅空白）时 Kind 为 KindNone
//
// 注意：显式 Kind 但对应字段为空时，等价于无内容（HasContent 为 false）。
func Normalize(raw StageContent) NormalizedContent {
	text := strings.TrimSpace(raw.Text)
	imageRef := strings.TrimSpace(raw.ImageRef)
	audioRef := strings.TrimSpace(raw.AudioRef)
	videoRef := strings.TrimSpace(raw.VideoRef)

	n := NormalizedContent{
		Text:     raw.Text,
		ImageRef: imageRef,
		AudioRef: audioRef,
		VideoRef: videoRef,
		HasText:  text != "",
		HasImage: imageRef != "",
		HasAudio: audioRef != "",
		HasVideo: videoRef != "",
	}

	kind := raw.Kind
	if kind == KindNone && raw.KindName != "" {
		kind = ParseContentKind(raw.KindName)
	}

	if kind == KindNone {
		switch {
		case n.HasVideo:
			kind = KindVideo
		case n.HasImage:
			kind = KindImage
		case n.HasAudio:
			kind = KindAudio
		case n.HasText:
			kind = KindText
		}
	}

	n.Kind = kind
	return n
}

// HasContent 判断阶段是否配置了至少一项非空内容
//
// 不变量：HasContent == (HasText || HasImage || HasAudio || HasVideo)
func HasContent(raw StageContent) bool {
	n := Normalize(raw)
	return n.HasText || n.HasImage || n.HasAudio || n.HasVideo
}
