package reward

import "github.com/hajimehoshi/ebiten/v2"

// CameraStream 活跃的相机流
type CameraStream interface {
	// Frame 返回当前帧，尚无帧时返回 nil
	Frame() *ebiten.Image
	// Stop 停止采集并释放设备
	Stop()
}

// CameraCapture 相机采集外部协作者
//
// Start 请求朝向环境的视频流。失败（权限被拒、无相机）不会中断
// 覆盖层 —— 呈现器记录日志后继续以无相机背景模式展示。
type CameraCapture interface {
	Start() (CameraStream, error)
}
