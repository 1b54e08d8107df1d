package reward

import (
	"fmt"
	"strings"

	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// StageName 里程碑阶段标识
type StageName string

const (
	// StageStart 游戏开始前
	StageStart StageName = "Inicio"
	// StageSuccess 答对一题后（带相机背景）
	StageSuccess StageName = "Acierto"
	// StageEnd 游戏结束时
	StageEnd StageName = "Final"
)

// AllStages 三个小游戏的完整阶段集合
// Bloques 游戏只使用 StageSuccess（见 pkg/games/blocks）。
var AllStages = []StageName{StageStart, StageSuccess, StageEnd}

// StageState 单个阶段的启用状态与内容
type StageState struct {
	Enabled bool
	Content StageContent
}

// StageConfig 阶段名到状态的映射
//
// 不变量：Enabled==true 且无内容是合法但"惰性"的配置 —— 编排器
// 把它当作"无可展示"直接放行，只有 Validate（显式保存检查点）
// 才把它当作错误。
type StageConfig map[StageName]*StageState

// DefaultStageConfig 返回全部禁用、内容为空的初始配置
func DefaultStageConfig(stages []StageName) StageConfig {
	cfg := make(StageConfig, len(stages))
	for _, s := range stages {
		cfg[s] = &StageState{}
	}
	return cfg
}

// 存储属性名
//
// 旧版本使用 selectedStages / config 两个属性名，读取时回退兼容，
// 写入时统一迁移到新名称。
const (
	propStages       = "ar_selected_stages"
	propConfig       = "ar_config"
	legacyPropStages = "selectedStages"
	legacyPropConfig = "config"
)

// persistedContent 是 StageContent 的持久化形式
//
// 除当前字段外还接受旧版 schema 的键名（TextoValor/ImagenUrl/...
// 以及布尔类型标记），加载时吸收进新结构。
type persistedContent struct {
	Type     string `yaml:"type,omitempty"`
	Text     string `yaml:"text,omitempty"`
	ImageURL string `yaml:"imageUrl,omitempty"`
	AudioURL string `yaml:"audioUrl,omitempty"`
	VideoURL string `yaml:"videoUrl,omitempty"`

	// 旧版 schema
	LegacyTextFlag  bool   `yaml:"Texto,omitempty"`
	LegacyImageFlag bool   `yaml:"Imagen,omitempty"`
	LegacyAudioFlag bool   `yaml:"Audio,omitempty"`
	LegacyVideoFlag bool   `yaml:"Video,omitempty"`
	LegacyText      string `yaml:"TextoValor,omitempty"`
	LegacyImageURL  string `yaml:"ImagenUrl,omitempty"`
	LegacyAudioURL  string `yaml:"AudioUrl,omitempty"`
	LegacyVideoURL  string `yaml:"VideoUrl,omitempty"`
}

func (p persistedContent) toContent() StageContent {
	c := StageContent{
		Text:     p.Text,
		ImageRef: p.ImageURL,
		AudioRef: p.AudioURL,
		VideoRef: p.VideoURL,
		KindName: p.Type,
	}
	// 旧版字段仅在新字段为空时生效
	if c.Text == "" {
		c.Text = p.LegacyText
	}
	if c.ImageRef == "" {
		c.ImageRef = p.LegacyImageURL
	}
	if c.AudioRef == "" {
		c.AudioRef = p.LegacyAudioURL
	}
	if c.VideoRef == "" {
		c.VideoRef = p.LegacyVideoURL
	}
	// 旧版用布尔标记表示类型
	if c.KindName == "" {
		switch {
		case p.LegacyVideoFlag:
			c.KindName = "Video"
		case p.LegacyImageFlag:
			c.KindName = "Imagen"
		case p.LegacyAudioFlag:
			c.KindName = "Audio"
		case p.LegacyTextFlag:
			c.KindName = "Texto"
		}
	}
	c.Kind = ParseContentKind(c.KindName)
	return c
}

func toPersisted(c StageContent) persistedContent {
	kindName := c.KindName
	if kindName == "" && c.Kind != KindNone {
		kindName = c.Kind.String()
	}
	return persistedContent{
		Type:     kindName,
		Text:     c.Text,
		ImageURL: c.ImageRef,
		AudioURL: c.AudioRef,
		VideoURL: c.VideoRef,
	}
}

// Store 阶段配置存储
//
// 职责：
//   - 按游戏命名空间持久化 StageConfig（gdata 对象属性）
//   - 读取容忍缺失/损坏数据，回退默认配置；兼容旧属性名
//   - 写入尽力而为：失败只记日志，内存配置才是当前会话的事实来源
//
// gdataManager 可为 nil（降级模式：仅内存，不持久化）。
type Store struct {
	gdataManager *gdata.Manager
	namespace    string
	stages       []StageName
	config       StageConfig
	logger       zerolog.Logger
}

// NewStore 创建阶段配置存储
//
// 参数：
//   - m: gdata 管理器，可为 nil（降级模式）
//   - namespace: 游戏命名空间（如 "ar_calculo"），作为 gdata 对象名
//   - stages: 该游戏使用的阶段集合
func NewStore(m *gdata.Manager, namespace string, stages []StageName, logger zerolog.Logger) *Store {
	s := &Store{
		gdataManager: m,
		namespace:    namespace,
		stages:       stages,
		config:       DefaultStageConfig(stages),
		logger:       logger.With().Str("component", "reward.Store").Str("namespace", namespace).Logger(),
	}
	s.Load()
	return s
}

// Stages 返回该存储管理的阶段集合
func (s *Store) Stages() []StageName {
	return s.stages
}

// Config 返回当前内存配置（会话事实来源）
func (s *Store) Config() StageConfig {
	return s.config
}

// Stage 返回指定阶段的状态，未知阶段返回空状态
func (s *Store) Stage(name StageName) StageState {
	if st, ok := s.config[name]; ok {
		return *st
	}
	return StageState{}
}

// Load 从 gdata 加载配置，缺失或损坏时保持默认值
func (s *Store) Load() {
	if s.gdataManager == nil {
		return
	}

	rawStages := s.loadProp(propStages, legacyPropStages)
	rawConfig := s.loadProp(propConfig, legacyPropConfig)
	if rawStages == nil && rawConfig == nil {
		return
	}

	cfg := DefaultStageConfig(s.stages)

	if rawStages != nil {
		var enabled map[StageName]bool
		if err := yaml.Unmarshal(rawStages, &enabled); err != nil {
			s.logger.Warn().Err(err).Msg("corrupt stage toggles, using defaults")
		} else {
			for name, on := range enabled {
				if st, ok := cfg[name]; ok {
					st.Enabled = on
				}
			}
		}
	}

	if rawConfig != nil {
		var contents map[StageName]persistedContent
		if err := yaml.Unmarshal(rawConfig, &contents); err != nil {
			s.logger.Warn().Err(err).Msg("corrupt stage contents, using defaults")
		} else {
			for name, pc := range contents {
				if st, ok := cfg[name]; ok {
					st.Content = pc.toContent()
				}
			}
		}
	}

	s.config = cfg
}

// loadProp 读取属性，新名称缺失时回退旧名称
func (s *Store) loadProp(prop, legacyProp string) []byte {
	for _, p := range []string{prop, legacyProp} {
		if !s.gdataManager.ObjectPropExists(s.namespace, p) {
			continue
		}
		data, err := s.gdataManager.LoadObjectProp(s.namespace, p)
		if err != nil {
			s.logger.Warn().Err(err).Str("prop", p).Msg("failed to load stage config prop")
			continue
		}
		return data
	}
	return nil
}

// Save 把当前配置写入 gdata（尽力而为，失败不向上传播）
func (s *Store) Save() {
	if s.gdataManager == nil {
		return
	}

	enabled := make(map[StageName]bool, len(s.config))
	contents := make(map[StageName]persistedContent, len(s.config))
	for name, st := range s.config {
		enabled[name] = st.Enabled
		contents[name] = toPersisted(st.Content)
	}

	if data, err := yaml.Marshal(enabled); err != nil {
		s.logger.Warn().Err(err).Msg("failed to marshal stage toggles")
	} else if err := s.gdataManager.SaveObjectProp(s.namespace, propStages, data); err != nil {
		s.logger.Warn().Err(err).Msg("failed to save stage toggles")
	}

	if data, err := yaml.Marshal(contents); err != nil {
		s.logger.Warn().Err(err).Msg("failed to marshal stage contents")
	} else if err := s.gdataManager.SaveObjectProp(s.namespace, propConfig, data); err != nil {
		s.logger.Warn().Err(err).Msg("failed to save stage contents")
	}
}

// ToggleStage 切换阶段启用状态并立即持久化
func (s *Store) ToggleStage(name StageName) {
	st, ok := s.config[name]
	if !ok {
		return
	}
	st.Enabled = !st.Enabled
	s.Save()
}

// ContentField 阶段内容的可编辑字段
type ContentField string

const (
	FieldText  ContentField = "text"
	FieldImage ContentField = "imageUrl"
	FieldAudio ContentField = "audioUrl"
	FieldVideo ContentField = "videoUrl"
)

// SetField 设置阶段内容字段并立即持久化
func (s *Store) SetField(name StageName, field ContentField, value string) {
	st, ok := s.config[name]
	if !ok {
		return
	}
	switch field {
	case FieldText:
		st.Content.Text = value
	case FieldImage:
		st.Content.ImageRef = value
	case FieldAudio:
		st.Content.AudioRef = value
	case FieldVideo:
		st.Content.VideoRef = value
	}
	s.Save()
}

// Reset 恢复默认配置并持久化（显式重置，而非自动过期）
func (s *Store) Reset() {
	s.config = DefaultStageConfig(s.stages)
	s.Save()
}

// Validate 保存检查点的同步校验
//
// 规则（与运行时的"空阶段直接放行"并存，保存侧从严、播放侧从宽）：
//   - 至少启用一个阶段
//   - 每个启用的阶段必须配置至少一项内容
func (s *Store) Validate() error {
	enabledCount := 0
	for _, name := range s.stages {
		st := s.config[name]
		if st == nil || !st.Enabled {
			continue
		}
		enabledCount++
		if !HasContent(st.Content) {
			return fmt.Errorf("la etapa %q no tiene contenido configurado", string(name))
		}
	}
	if enabledCount == 0 {
		names := make([]string, len(s.stages))
		for i, n := range s.stages {
			names[i] = string(n)
		}
		return fmt.Errorf("selecciona al menos una etapa de RA (%s)", strings.Join(names, "/"))
	}
	return nil
}
