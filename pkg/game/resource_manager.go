package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // 注册 JPEG 解码器
	_ "image/png"  // 注册 PNG 解码器
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"

	"github.com/JR-amirez/juegos-ar/internal/media"
)

// ResourceManager 资源管理器
//
// 职责：
//   - 加载并缓存场景用的图片、音效与字体
//   - 资源路径先查内嵌文件系统，再按磁盘路径回退
//   - 同一路径只解码一次（缓存键为路径）
//
// 奖励内容的媒体走 internal/media 的 Library（用户可选任意本地
// 文件），这里只管应用自带的界面资源。
type ResourceManager struct {
	fsys         fs.FS
	audioContext *audio.Context
	logger       zerolog.Logger

	imageCache map[string]*ebiten.Image
	soundCache map[string]*audio.Player
	fontCache  map[string]*text.GoTextFaceSource
}

// NewResourceManager 创建资源管理器
//
// audioContext 可为 nil（无音频环境，音效加载一律失败）。
func NewResourceManager(fsys fs.FS, audioContext *audio.Context, logger zerolog.Logger) *ResourceManager {
	return &ResourceManager{
		fsys:         fsys,
		audioContext: audioContext,
		logger:       logger.With().Str("component", "game.ResourceManager").Logger(),
		imageCache:   make(map[string]*ebiten.Image),
		soundCache:   make(map[string]*audio.Player),
		fontCache:    make(map[string]*text.GoTextFaceSource),
	}
}

// readFile 解析路径为字节内容（先内嵌后磁盘）
func (rm *ResourceManager) readFile(path string) ([]byte, error) {
	if rm.fsys != nil {
		if data, err := fs.ReadFile(rm.fsys, path); err == nil {
			return data, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("abrir recurso %q: %w", path, err)
	}
	return data, nil
}

// LoadImage 加载并缓存图片
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if img, ok := rm.imageCache[path]; ok {
		return img, nil
	}

	data, err := rm.readFile(path)
	if err != nil {
		return nil, err
	}
	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decodificar imagen %q: %w", path, err)
	}

	img := ebiten.NewImageFromImage(decoded)
	rm.imageCache[path] = img
	return img, nil
}

// LoadSoundEffect 加载并缓存音效播放器（单次播放，不循环）
//
// 支持 .mp3 / .wav / .au（旧素材库的 μ-law 提示音）。
func (rm *ResourceManager) LoadSoundEffect(path string) (*audio.Player, error) {
	if player, ok := rm.soundCache[path]; ok {
		return player, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("contexto de audio no disponible")
	}

	data, err := rm.readFile(path)
	if err != nil {
		return nil, err
	}

	var stream interface {
		Read([]byte) (int, error)
		Seek(int64, int) (int64, error)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		stream, err = mp3.DecodeWithoutResampling(bytes.NewReader(data))
	case ".wav":
		stream, err = wav.DecodeWithoutResampling(bytes.NewReader(data))
	case ".au":
		stream, err = media.DecodeAu(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("formato de audio no soportado: %q", path)
	}
	if err != nil {
		return nil, fmt.Errorf("decodificar audio %q: %w", path, err)
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("crear reproductor para %q: %w", path, err)
	}
	rm.soundCache[path] = player
	return player, nil
}

// LoadMusic 加载并缓存循环播放的背景音乐播放器
func (rm *ResourceManager) LoadMusic(path string) (*audio.Player, error) {
	cacheKey := "music:" + path
	if player, ok := rm.soundCache[cacheKey]; ok {
		return player, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("contexto de audio no disponible")
	}

	data, err := rm.readFile(path)
	if err != nil {
		return nil, err
	}

	var stream io.ReadSeeker
	var length int64
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		decoded, err := mp3.DecodeWithoutResampling(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decodificar música %q: %w", path, err)
		}
		stream, length = decoded, decoded.Length()
	case ".wav":
		decoded, err := wav.DecodeWithoutResampling(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decodificar música %q: %w", path, err)
		}
		stream, length = decoded, decoded.Length()
	case ".au":
		decoded, err := media.DecodeAu(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decodificar música %q: %w", path, err)
		}
		stream, length = decoded, decoded.Length()
	default:
		return nil, fmt.Errorf("formato de audio no soportado: %q", path)
	}

	player, err := rm.audioContext.NewPlayer(audio.NewInfiniteLoop(stream, length))
	if err != nil {
		return nil, fmt.Errorf("crear reproductor para %q: %w", path, err)
	}
	rm.soundCache[cacheKey] = player
	return player, nil
}

// LoadFontFace 加载字体并返回指定字号的字面
//
// 字体文件缺失不是致命错误：调用方（奖励渲染、场景文本）对
// nil 字面有降级路径。
func (rm *ResourceManager) LoadFontFace(path string, size float64) (*text.GoTextFace, error) {
	source, ok := rm.fontCache[path]
	if !ok {
		data, err := rm.readFile(path)
		if err != nil {
			return nil, err
		}
		source, err = text.NewGoTextFaceSource(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parsear fuente %q: %w", path, err)
		}
		rm.fontCache[path] = source
	}
	return &text.GoTextFace{Source: source, Size: size}, nil
}

// GetAudioContext 返回音频上下文（可为 nil）
func (rm *ResourceManager) GetAudioContext() *audio.Context {
	return rm.audioContext
}
