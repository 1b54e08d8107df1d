package media

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

func pcmBytes(t *testing.T, samples []int16) []byte {
	t.Helper()
	var buf bytes.Buffer
	for _, s := range samples {
		if err := binary.Write(&buf, binary.LittleEndian, s); err != nil {
			t.Fatalf("write sample: %v", err)
		}
	}
	return buf.Bytes()
}

// TestEnergyMeterSilence 测试静音段能量为 0
func TestEnergyMeterSilence(t *testing.T) {
	meter := NewEnergyMeter(bytes.NewReader(pcmBytes(t, make([]int16, 1024))))

	if _, err := io.ReadAll(meter); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := meter.Level(); got != 0 {
		t.Errorf("Level() on silence = %v, want 0", got)
	}
}

// TestEnergyMeterLoudSignal 测试满幅信号能量接近 1
func TestEnergyMeterLoudSignal(t *testing.T) {
	samples := make([]int16, 1024)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = 32000
		} else {
			samples[i] = -32000
		}
	}
	meter := NewEnergyMeter(bytes.NewReader(pcmBytes(t, samples)))

	if _, err := io.ReadAll(meter); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := meter.Level(); got < 0.9 {
		t.Errorf("Level() on full-scale signal = %v, want >= 0.9", got)
	}
	if got := meter.Level(); got > 1 {
		t.Errorf("Level() = %v, must be clamped to 1", got)
	}
}

// TestEnergyMeterSeekPassthrough 测试 Seek 透传到底层流
func TestEnergyMeterSeekPassthrough(t *testing.T) {
	data := pcmBytes(t, []int16{1, 2, 3, 4})
	meter := NewEnergyMeter(bytes.NewReader(data))

	pos, err := meter.Seek(4, io.SeekStart)
	if err != nil || pos != 4 {
		t.Fatalf("Seek() = %d, %v", pos, err)
	}
	rest, _ := io.ReadAll(meter)
	if len(rest) != 4 {
		t.Errorf("bytes after seek = %d, want 4", len(rest))
	}
}
