package media

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

	"github.com/JR-amirez/juegos-ar/pkg/reward"
)

// Library 媒体库
//
// 引用地址的解析规则：先在内嵌文件系统里找（相对路径），找不到
// 再按磁盘绝对路径打开（用户通过配置界面选择的本地文件）。
type Library struct {
	fsys         fs.FS
	audioContext *audio.Context
}

// NewLibrary 创建媒体库
//
// audioContext 整个进程只有一个（Ebitengine 限制），由 app 创建
// 后传入；可为 nil（无音频环境，打开音频一律失败）。
func NewLibrary(fsys fs.FS, audioContext *audio.Context) *Library {
	return &Library{fsys: fsys, audioContext: audioContext}
}

// open 解析引用地址为字节内容
func (l *Library) open(ref string) ([]byte, error) {
	if l.fsys != nil {
		if data, err := fs.ReadFile(l.fsys, ref); err == nil {
			return data, nil
		}
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("abrir %q: %w", ref, err)
	}
	return data, nil
}

// Images 返回 reward.ImageProvider 视图
func (l *Library) Images() reward.ImageProvider { return imageAdapter{l} }

// Audios 返回 reward.AudioProvider 视图
func (l *Library) Audios() reward.AudioProvider { return audioAdapter{l} }

// Videos 返回 reward.VideoProvider 视图
func (l *Library) Videos() reward.VideoProvider { return videoAdapter{l} }

type imageAdapter struct{ lib *Library }

func (a imageAdapter) Load(ref string) (*ebiten.Image, error) { return a.lib.LoadImage(ref) }

type audioAdapter struct{ lib *Library }

func (a audioAdapter) Open(ref string) (reward.AudioSource, error) { return a.lib.OpenAudio(ref) }

type videoAdapter struct{ lib *Library }

func (a videoAdapter) Open(ref string) (reward.VideoSource, error) { return a.lib.OpenVideo(ref) }

// LoadImage 解码引用地址指向的图片
func (l *Library) LoadImage(ref string) (*ebiten.Image, error) {
	data, err := l.open(ref)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decodificar imagen %q: %w", ref, err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// OpenAudio 打开引用地址指向的音频
//
// 按扩展名选择解码器：.mp3 / .wav / .au。解码流包一层能量计
// 后循环播放，能量驱动覆盖层音符的脉动。
func (l *Library) OpenAudio(ref string) (reward.AudioSource, error) {
	if l.audioContext == nil {
		return nil, fmt.Errorf("contexto de audio no disponible")
	}

	data, err := l.open(ref)
	if err != nil {
		return nil, err
	}

	var stream io.ReadSeeker
	var length int64
	switch strings.ToLower(filepath.Ext(ref)) {
	case ".mp3":
		decoded, err := mp3.DecodeWithoutResampling(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decodificar mp3 %q: %w", ref, err)
		}
		stream, length = decoded, decoded.Length()
	case ".wav":
		decoded, err := wav.DecodeWithoutResampling(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decodificar wav %q: %w", ref, err)
		}
		stream, length = decoded, decoded.Length()
	case ".au":
		decoded, err := DecodeAu(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decodificar au %q: %w", ref, err)
		}
		stream, length = decoded, decoded.Length()
	default:
		return nil, fmt.Errorf("formato de audio no soportado: %q", ref)
	}

	meter := NewEnergyMeter(stream)
	player, err := l.audioContext.NewPlayer(audio.NewInfiniteLoop(meter, length))
	if err != nil {
		return nil, fmt.Errorf("crear reproductor para %q: %w", ref, err)
	}

	return &audioSource{player: player, meter: meter}, nil
}

// audioSource 基于 audio.Player + 能量计的 reward.AudioSource 实现
type audioSource struct {
	player *audio.Player
	meter  *EnergyMeter
}

func (a *audioSource) Play() {
	if !a.player.IsPlaying() {
		a.player.Play()
	}
}

func (a *audioSource) Pause() {
	a.player.Pause()
}

func (a *audioSource) Playing() bool {
	return a.player.IsPlaying()
}

func (a *audioSource) Ready() bool {
	return true
}

func (a *audioSource) Energy() float64 {
	return a.meter.Level()
}

func (a *audioSource) Close() {
	a.player.Pause()
	_ = a.player.Close()
}
