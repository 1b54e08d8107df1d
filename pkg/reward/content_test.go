package reward

import "testing"

// TestNormalizePrecedence 测试无显式类型时按 Video > Imagen > Audio > Texto 推断
func TestNormalizePrecedence(t *testing.T) {
	tests := []struct {
		name string
		raw  StageContent
		want ContentKind
	}{
		{
			name: "四项俱全取视频",
			raw:  StageContent{Text: "hola", ImageRef: "img.png", AudioRef: "a.mp3", VideoRef: "v.mp4"},
			want: KindVideo,
		},
		{
			name: "无视频取图片",
			raw:  StageContent{Text: "hola", ImageRef: "img.png", AudioRef: "a.mp3"},
			want: KindImage,
		},
		{
			name: "仅音频和文本取音频",
			raw:  StageContent{Text: "hola", AudioRef: "a.mp3"},
			want: KindAudio,
		},
		{
			name: "仅文本取文本",
			raw:  StageContent{Text: "hola"},
			want: KindText,
		},
		{
			name: "全空为无内容",
			raw:  StageContent{},
			want: KindNone,
		},
		{
			name: "仅空白字符等价于空",
			raw:  StageContent{Text: "   ", ImageRef: "\t", VideoRef: " \n "},
			want: KindNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if got.Kind != tt.want {
				t.Errorf("Normalize(%+v).Kind = %v, want %v", tt.raw, got.Kind, tt.want)
			}
		})
	}
}

// TestNormalizeExplicitKind 测试显式类型优先于推断优先级
func TestNormalizeExplicitKind(t *testing.T) {
	raw := StageContent{
		Text:     "hola",
		VideoRef: "v.mp4",
		KindName: "Texto",
	}
	got := Normalize(raw)
	if got.Kind != KindText {
		t.Errorf("explicit Texto: got %v, want KindText", got.Kind)
	}

	// 字段残留时 Has* 仍然如实反映，由布局策略决定展示
	if !got.HasVideo {
		t.Error("HasVideo: got false, want true (raw field is non-empty)")
	}
}

// TestParseContentKindLegacyAlias 测试旧版 "Texto3D" 与 "Texto" 等价
func TestParseContentKindLegacyAlias(t *testing.T) {
	if got := ParseContentKind("Texto3D"); got != KindText {
		t.Errorf(`ParseContentKind("Texto3D") = %v, want KindText`, got)
	}
	if got := ParseContentKind("Texto"); got != KindText {
		t.Errorf(`ParseContentKind("Texto") = %v, want KindText`, got)
	}
	if got := ParseContentKind("desconocido"); got != KindNone {
		t.Errorf(`ParseContentKind("desconocido") = %v, want KindNone`, got)
	}
}

// TestHasContentInvariant 测试 HasContent 与 Has* 布尔值的不变量
func TestHasContentInvariant(t *testing.T) {
	tests := []struct {
		name string
		raw  StageContent
		want bool
	}{
		{"空内容", StageContent{}, false},
		{"仅空白", StageContent{Text: "  "}, false},
		{"有文本", StageContent{Text: "x"}, true},
		{"有图片", StageContent{ImageRef: "i.png"}, true},
		{"有音频", StageContent{AudioRef: "a.mp3"}, true},
		{"有视频", StageContent{VideoRef: "v.mp4"}, true},
		{"显式类型但字段全空", StageContent{KindName: "Video"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasContent(tt.raw); got != tt.want {
				t.Errorf("HasContent(%+v) = %v, want %v", tt.raw, got, tt.want)
			}
			// 不变量：HasContent 等价于任一 Has* 为真
			n := Normalize(tt.raw)
			union := n.HasText || n.HasImage || n.HasAudio || n.HasVideo
			if union != tt.want {
				t.Errorf("Has* union = %v, want %v", union, tt.want)
			}
		})
	}
}

// TestVisualCount 测试可视元素计数不含音频
func TestVisualCount(t *testing.T) {
	n := Normalize(StageContent{Text: "hola", ImageRef: "i.png", AudioRef: "a.mp3"})
	if got := n.VisualCount(); got != 2 {
		t.Errorf("VisualCount() = %d, want 2", got)
	}

	audioOnly := Normalize(StageContent{AudioRef: "a.mp3"})
	if got := audioOnly.VisualCount(); got != 0 {
		t.Errorf("audio-only VisualCount() = %d, want 0", got)
	}
}

// TestContentKindString 测试类型名称与持久化值一致
func TestContentKindString(t *testing.T) {
	pairs := map[ContentKind]string{
		KindNone:  "",
		KindText:  "Texto",
		KindImage: "Imagen",
		KindAudio: "Audio",
		KindVideo: "Video",
	}
	for kind, want := range pairs {
		if got := kind.String(); got != want {
			t.Errorf("ContentKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
