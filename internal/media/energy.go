package media

import (
	"io"
	"math"
	"sync"
)

// energyWindow 能量计的滑动窗口大小（16 位立体声 44.1kHz 下约 46ms）
const energyWindow = 8192

// EnergyMeter 音频能量计
//
// 包一层 PCM 流（16 位小端），在播放器拉取数据的同时对最近一个
// 窗口做 RMS，归一化到 0~1。奖励覆盖层的音符用它驱动脉动动画。
// Read/Seek 从播放器 goroutine 调用，Level 从帧更新调用，需加锁。
type EnergyMeter struct {
	src io.ReadSeeker

	mu    sync.Mutex
	level float64
}

// NewEnergyMeter 包装 PCM 流
func NewEnergyMeter(src io.ReadSeeker) *EnergyMeter {
	return &EnergyMeter{src: src}
}

// Read 透传读取并更新能量水平
func (m *EnergyMeter) Read(p []byte) (int, error) {
	n, err := m.src.Read(p)
	if n > 1 {
		m.measure(p[:n])
	}
	return n, err
}

// Seek 透传定位
func (m *EnergyMeter) Seek(offset int64, whence int) (int64, error) {
	return m.src.Seek(offset, whence)
}

// Level 返回最近窗口的归一化能量（0~1）
func (m *EnergyMeter) Level() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level
}

// measure 计算一批样本的 RMS 并归一化
func (m *EnergyMeter) measure(chunk []byte) {
	if len(chunk) > energyWindow {
		chunk = chunk[len(chunk)-energyWindow:]
	}

	var sum float64
	samples := len(chunk) / 2
	if samples == 0 {
		return
	}
	for i := 0; i+1 < len(chunk); i += 2 {
		sample := float64(int16(uint16(chunk[i]) | uint16(chunk[i+1])<<8))
		sum += sample * sample
	}
	rms := math.Sqrt(sum/float64(samples)) / 32768

	m.mu.Lock()
	m.level = math.Min(rms*2.5, 1) // 提升灵敏度后截断到 1
	m.mu.Unlock()
}
