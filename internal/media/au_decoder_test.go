package media

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

// buildAu 构造一个最小的 .au 文件
func buildAu(t *testing.T, encoding uint32, channels uint32, samples []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	header := []uint32{
		0x2e736e64,           // magic ".snd"
		24,                   // data offset
		uint32(len(samples)), // data size
		encoding,
		8000, // sample rate
		channels,
	}
	for _, v := range header {
		if err := binary.Write(&buf, binary.BigEndian, v); err != nil {
			t.Fatalf("write header: %v", err)
		}
	}
	buf.Write(samples)
	return buf.Bytes()
}

// TestDecodeAu 测试 μ-law 解码为 16 位 PCM
func TestDecodeAu(t *testing.T) {
	// 0xFF 解码为 0，0x7F 解码为 0（静音的两个表示）
	data := buildAu(t, 1, 1, []byte{0xFF, 0x7F, 0x00})

	stream, err := DecodeAu(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeAu() error: %v", err)
	}

	if stream.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", stream.SampleRate())
	}
	if stream.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", stream.Channels())
	}
	if stream.Length() != 6 {
		t.Errorf("Length() = %d, want 6 (3 samples x 2 bytes)", stream.Length())
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	// 0xFF -> 0, 0x7F -> 0, 0x00 -> -32124
	want := []int16{0, 0, -32124}
	for i, w := range want {
		got := int16(uint16(pcm[i*2]) | uint16(pcm[i*2+1])<<8)
		if got != w {
			t.Errorf("sample %d = %d, want %d", i, got, w)
		}
	}
}

// TestDecodeAuSeek 测试 Seek 语义
func TestDecodeAuSeek(t *testing.T) {
	data := buildAu(t, 1, 1, []byte{0xFF, 0xFF, 0xFF, 0xFF})
	stream, err := DecodeAu(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeAu() error: %v", err)
	}

	if _, err := io.ReadAll(stream); err != nil {
		t.Fatalf("drain stream: %v", err)
	}
	if n, _ := stream.Read(make([]byte, 4)); n != 0 {
		t.Errorf("Read at EOF = %d bytes, want 0", n)
	}

	pos, err := stream.Seek(2, io.SeekStart)
	if err != nil || pos != 2 {
		t.Fatalf("Seek(2, start) = %d, %v", pos, err)
	}
	rest, _ := io.ReadAll(stream)
	if len(rest) != 6 {
		t.Errorf("bytes after seek = %d, want 6", len(rest))
	}

	if _, err := stream.Seek(-100, io.SeekStart); err == nil {
		t.Error("Seek to negative position: got nil error")
	}
}

// TestDecodeAuRejectsBadInput 测试各种非法输入
func TestDecodeAuRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"太短", []byte{0x2e, 0x73}},
		{"错误 magic", buildAu(t, 1, 1, []byte{0xFF})[4:]},
		{"不支持的编码", buildAu(t, 3, 1, []byte{0xFF})},
		{"声道数非法", buildAu(t, 1, 5, []byte{0xFF})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeAu(bytes.NewReader(tt.data)); err == nil {
				t.Error("DecodeAu() = nil error, want failure")
			}
		})
	}
}
