package game

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog"
)

// AudioManager 音频管理器
//
// 职责：
//   - 统一播放界面音效与背景音乐
//   - 从 SettingsManager 读取音量/开关并即时应用
//
// 所有播放都通过这里走，场景不直接持有播放器。
type AudioManager struct {
	resourceManager *ResourceManager
	settingsManager *SettingsManager
	logger          zerolog.Logger

	currentMusic     *audio.Player
	currentMusicPath string
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - rm: 资源管理器（加载音频）
//   - sm: 设置管理器（读取音量设置，可为 nil）
func NewAudioManager(rm *ResourceManager, sm *SettingsManager, logger zerolog.Logger) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		logger:          logger.With().Str("component", "game.AudioManager").Logger(),
	}
}

// PlaySound 播放一次音效，返回是否成功
func (am *AudioManager) PlaySound(path string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player, err := am.resourceManager.LoadSoundEffect(path)
	if err != nil {
		am.logger.Warn().Err(err).Str("path", path).Msg("failed to load sound effect")
		return false
	}

	player.SetVolume(am.soundVolume())
	if err := player.Rewind(); err != nil {
		am.logger.Warn().Err(err).Str("path", path).Msg("failed to rewind sound effect")
		return false
	}
	player.Play()
	return true
}

// PlayMusic 循环播放背景音乐（切换曲目时停掉上一首）
func (am *AudioManager) PlayMusic(path string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().MusicEnabled {
		return false
	}
	if am.currentMusicPath == path && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return true
	}

	player, err := am.resourceManager.LoadMusic(path)
	if err != nil {
		am.logger.Warn().Err(err).Str("path", path).Msg("failed to load music")
		return false
	}

	am.StopMusic()
	player.SetVolume(am.musicVolume())
	player.Play()
	am.currentMusic = player
	am.currentMusicPath = path
	return true
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		am.currentMusic = nil
		am.currentMusicPath = ""
	}
}

// ApplyVolumes 设置变更后重新应用音量（设置界面保存时调用）
func (am *AudioManager) ApplyVolumes() {
	if am.currentMusic != nil {
		am.currentMusic.SetVolume(am.musicVolume())
		if am.settingsManager != nil && !am.settingsManager.GetSettings().MusicEnabled {
			am.StopMusic()
		}
	}
}

func (am *AudioManager) soundVolume() float64 {
	if am.settingsManager == nil {
		return 1
	}
	return am.settingsManager.GetSettings().SoundVolume
}

func (am *AudioManager) musicVolume() float64 {
	if am.settingsManager == nil {
		return 1
	}
	return am.settingsManager.GetSettings().MusicVolume
}
