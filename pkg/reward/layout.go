package reward

import "image"

// Layout 多内容布局策略
type Layout int

const (
	// LayoutSingle 恰好一个可视元素：居中单槽
	LayoutSingle Layout = iota
	// LayoutAudioOnly 只有音频：居中的"纯音频"展示（可见播放控件）
	LayoutAudioOnly
	// LayoutTextTop 两个可视元素且其一为文本：文本槽叠在另一元素上方
	LayoutTextTop
	// LayoutRow 图片 + 视频：并排一行
	LayoutRow
	// LayoutThree 文本 + 图片 + 视频：文本在上，图片视频并排在下
	LayoutThree
	// LayoutStack 兜底：全部纵向堆叠
	LayoutStack
)

// AudioMode 音频的呈现方式
type AudioMode int

const (
	// AudioNone 无音频
	AudioNone AudioMode = iota
	// AudioHidden 有可视元素时：隐藏的自动播放元素
	AudioHidden
	// AudioVisible 无可视元素时：可见播放控件
	AudioVisible
)

// ChooseLayout 按可视元素组合选择布局
func ChooseLayout(n NormalizedContent) Layout {
	switch n.VisualCount() {
	case 0:
		if n.HasAudio {
			return LayoutAudioOnly
		}
		return LayoutStack
	case 1:
		return LayoutSingle
	case 2:
		if n.HasText {
			return LayoutTextTop
		}
		return LayoutRow
	case 3:
		return LayoutThree
	default:
		return LayoutStack
	}
}

// ChooseAudioMode 按可视元素数量选择音频呈现方式
func ChooseAudioMode(n NormalizedContent) AudioMode {
	if !n.HasAudio {
		return AudioNone
	}
	if n.VisualCount() == 0 {
		return AudioVisible
	}
	return AudioHidden
}

// SlotPlacement 一个内容槽的类型与区域
type SlotPlacement struct {
	Kind ContentKind
	Rect image.Rectangle
}

// slotMargin 槽之间/槽与边缘的间距占比
const slotMargin = 0.04

// PlaceSlots 在 (width, height) 的表面内计算各槽区域
//
// 尺寸变化时由会话重新调用（持续观察 resize），槽渲染器按新
// 区域重新适配。隐藏音频不占槽位（见 ChooseAudioMode）。
func PlaceSlots(n NormalizedContent, width, height int) []SlotPlacement {
	w := float64(width)
	h := float64(height)
	m := slotMargin * w

	inner := func(x0, y0, x1, y1 float64) image.Rectangle {
		return image.Rect(int(x0), int(y0), int(x1), int(y1))
	}

	// 第一个非文本可视元素的类型（文本置顶布局的下半部分）
	mediaKind := func() ContentKind {
		if n.HasImage {
			return KindImage
		}
		return KindVideo
	}

	switch ChooseLayout(n) {
	case LayoutSingle:
		kind := KindText
		switch {
		case n.HasVideo:
			kind = KindVideo
		case n.HasImage:
			kind = KindImage
		}
		return []SlotPlacement{{Kind: kind, Rect: inner(m, m, w-m, h-m)}}

	case LayoutAudioOnly:
		return []SlotPlacement{{Kind: KindAudio, Rect: inner(m, m, w-m, h-m)}}

	case LayoutTextTop:
		split := h * 0.35
		return []SlotPlacement{
			{Kind: KindText, Rect: inner(m, m, w-m, split)},
			{Kind: mediaKind(), Rect: inner(m, split+m, w-m, h-m)},
		}

	case LayoutRow:
		mid := w / 2
		return []SlotPlacement{
			{Kind: KindImage, Rect: inner(m, m, mid-m/2, h-m)},
			{Kind: KindVideo, Rect: inner(mid+m/2, m, w-m, h-m)},
		}

	case LayoutThree:
		split := h * 0.3
		mid := w / 2
		return []SlotPlacement{
			{Kind: KindText, Rect: inner(m, m, w-m, split)},
			{Kind: KindImage, Rect: inner(m, split+m, mid-m/2, h-m)},
			{Kind: KindVideo, Rect: inner(mid+m/2, split+m, w-m, h-m)},
		}

	default: // LayoutStack
		var kinds []ContentKind
		if n.HasText {
			kinds = append(kinds, KindText)
		}
		if n.HasImage {
			kinds = append(kinds, KindImage)
		}
		if n.HasVideo {
			kinds = append(kinds, KindVideo)
		}
		if len(kinds) == 0 {
			return nil
		}
		rowH := (h - m*float64(len(kinds)+1)) / float64(len(kinds))
		placements := make([]SlotPlacement, 0, len(kinds))
		y := m
		for _, k := range kinds {
			placements = append(placements, SlotPlacement{Kind: k, Rect: inner(m, y, w-m, y+rowH)})
			y += rowH + m
		}
		return placements
	}
}
