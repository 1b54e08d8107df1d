package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileMinter 把用户选择的本地文件拷贝为临时引用（reward.BlobMinter 实现）
//
// 拷贝而不是直接引用原路径：配置界面选完文件后用户可能移动或
// 删除原文件，而引用要活到被替换或组件销毁为止。释放即删除拷贝。
type FileMinter struct {
	dir string
}

// NewFileMinter 创建铸造器，拷贝存放在系统临时目录下的独立子目录
func NewFileMinter() (*FileMinter, error) {
	dir, err := os.MkdirTemp("", "juegos-ar-blobs-")
	if err != nil {
		return nil, fmt.Errorf("crear directorio temporal: %w", err)
	}
	return &FileMinter{dir: dir}, nil
}

// Mint 拷贝文件并返回临时路径与删除操作
func (m *FileMinter) Mint(path string) (string, func(), error) {
	src, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("abrir %q: %w", path, err)
	}
	defer src.Close()

	ref := filepath.Join(m.dir, uuid.NewString()+filepath.Ext(path))
	dst, err := os.Create(ref)
	if err != nil {
		return "", nil, fmt.Errorf("crear copia temporal: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(ref)
		return "", nil, fmt.Errorf("copiar %q: %w", path, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(ref)
		return "", nil, fmt.Errorf("cerrar copia temporal: %w", err)
	}

	release := func() { os.Remove(ref) }
	return ref, release, nil
}

// Close 删除整个临时目录（程序退出时调用）
func (m *FileMinter) Close() {
	os.RemoveAll(m.dir)
}
