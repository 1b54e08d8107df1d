// Package media 提供奖励内容与游戏音效的媒体解码/采集实现
//
// 对应 pkg/reward 的协作者接口：图片/音频/视频提供者、相机采集
// 与本地文件引用铸造。解码全部在内存完成，输出可直接交给
// Ebitengine 的音频/图像系统。
package media

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// AuStream 解码后的 Sun/NeXT (.au) 音频流
//
// 旧素材库里的提示音以 μ-law 编码的 .au 文件保存，解码为
// 16 位小端 PCM 后实现 io.ReadSeeker，可直接喂给 audio.Player。
type AuStream struct {
	pcm        []byte
	sampleRate int64
	channels   int
	offset     int64
}

type auHeader struct {
	Magic      uint32
	DataOffset uint32
	DataSize   uint32
	Encoding   uint32
	SampleRate uint32
	Channels   uint32
}

const (
	auMagic        = 0x2e736e64 // ".snd"
	auEncodingULaw = 1
)

// μ-law 解压表（μ-law 字节 -> 16 位 PCM）
var mulawTable = [256]int16{
	-32124, -31100, -30076, -29052, -28028, -27004, -25980, -24956,
	-23932, -22908, -21884, -20860, -19836, -18812, -17788, -16764,
	-15996, -15484, -14972, -14460, -13948, -13436, -12924, -12412,
	-11900, -11388, -10876, -10364, -9852, -9340, -8828, -8316,
	-7932, -7676, -7420, -7164, -6908, -6652, -6396, -6140,
	-5884, -5628, -5372, -5116, -4860, -4604, -4348, -4092,
	-3900, -3772, -3644, -3516, -3388, -3260, -3132, -3004,
	-2876, -2748, -2620, -2492, -2364, -2236, -2108, -1980,
	-1884, -1820, -1756, -1692, -1628, -1564, -1500, -1436,
	-1372, -1308, -1244, -1180, -1116, -1052, -988, -924,
	-876, -844, -812, -780, -748, -716, -684, -652,
	-620, -588, -556, -524, -492, -460, -428, -396,
	-372, -356, -340, -324, -308, -292, -276, -260,
	-244, -228, -212, -196, -180, -164, -148, -132,
	-120, -112, -104, -96, -88, -80, -72, -64,
	-56, -48, -40, -32, -24, -16, -8, 0,
	32124, 31100, 30076, 29052, 28028, 27004, 25980, 24956,
	23932, 22908, 21884, 20860, 19836, 18812, 17788, 16764,
	15996, 15484, 14972, 14460, 13948, 13436, 12924, 12412,
	11900, 11388, 10876, 10364, 9852, 9340, 8828, 8316,
	7932, 7676, 7420, 7164, 6908, 6652, 6396, 6140,
	5884, 5628, 5372, 5116, 4860, 4604, 4348, 4092,
	3900, 3772, 3644, 3516, 3388, 3260, 3132, 3004,
	2876, 2748, 2620, 2492, 2364, 2236, 2108, 1980,
	1884, 1820, 1756, 1692, 1628, 1564, 1500, 1436,
	1372, 1308, 1244, 1180, 1116, 1052, 988, 924,
	876, 844, 812, 780, 748, 716, 684, 652,
	620, 588, 556, 524, 492, 460, 428, 396,
	372, 356, 340, 324, 308, 292, 276, 260,
	244, 228, 212, 196, 180, 164, 148, 132,
	120, 112, 104, 96, 88, 80, 72, 64,
	56, 48, 40, 32, 24, 16, 8, 0,
}

// DecodeAu 解码 .au 音频文件
func DecodeAu(r io.Reader) (*AuStream, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer archivo AU: %w", err)
	}
	if len(data) < 24 {
		return nil, fmt.Errorf("archivo AU truncado: %d bytes", len(data))
	}

	var header auHeader
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("leer cabecera AU: %w", err)
	}
	if header.Magic != auMagic {
		return nil, fmt.Errorf("firma AU inválida: 0x%08x", header.Magic)
	}
	if header.Encoding != auEncodingULaw {
		return nil, fmt.Errorf("codificación AU no soportada: %d", header.Encoding)
	}
	if header.Channels < 1 || header.Channels > 2 {
		return nil, fmt.Errorf("canales no soportados: %d", header.Channels)
	}

	offset := int(header.DataOffset)
	if offset < 24 || offset >= len(data) {
		return nil, fmt.Errorf("offset de datos inválido: %d", offset)
	}

	ulaw := data[offset:]
	pcm := make([]byte, len(ulaw)*2)
	for i, b := range ulaw {
		sample := mulawTable[b]
		pcm[i*2] = byte(sample)
		pcm[i*2+1] = byte(sample >> 8)
	}

	return &AuStream{
		pcm:        pcm,
		sampleRate: int64(header.SampleRate),
		channels:   int(header.Channels),
	}, nil
}

// Read 实现 io.Reader
func (s *AuStream) Read(p []byte) (int, error) {
	if s.offset >= int64(len(s.pcm)) {
		return 0, io.EOF
	}
	n := copy(p, s.pcm[s.offset:])
	s.offset += int64(n)
	return n, nil
}

// Seek 实现 io.Seeker
func (s *AuStream) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = s.offset + offset
	case io.SeekEnd:
		next = int64(len(s.pcm)) + offset
	default:
		return 0, fmt.Errorf("whence inválido: %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("posición negativa: %d", next)
	}
	s.offset = next
	return next, nil
}

// Length 返回解码后 PCM 数据的字节数
func (s *AuStream) Length() int64 {
	return int64(len(s.pcm))
}

// SampleRate 返回采样率（Hz）
func (s *AuStream) SampleRate() int64 {
	return s.sampleRate
}

// Channels 返回声道数
func (s *AuStream) Channels() int {
	return s.channels
}
