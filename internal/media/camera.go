package media

import (
	"fmt"

	"github.com/JR-amirez/juegos-ar/pkg/reward"
)

// NoCamera 无相机后端的采集实现（reward.CameraCapture）
//
// 桌面构建没有视频采集后端，Start 总是失败，覆盖层按"相机不可用"
// 路径降级（无实况背景继续展示）。保留该类型是为了让装配代码在
// 所有平台上统一：有后端的平台替换这里的实现即可。
type NoCamera struct{}

func (NoCamera) Start() (reward.CameraStream, error) {
	return nil, fmt.Errorf("captura de cámara no disponible en esta plataforma")
}
