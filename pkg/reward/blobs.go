package reward

import (
	"fmt"

	"github.com/rs/zerolog"
)

// BlobMinter 把用户选择的本地文件转换为短生命周期的可引用地址
//
// 外部协作者接口：实现方负责真正的资源铸造/释放（桌面端通常是
// 临时文件拷贝，Web 端是 object URL）。
type BlobMinter interface {
	// Mint 为文件铸造一个引用，返回引用地址和对应的释放操作
	Mint(path string) (ref string, release func(), err error)
}

// blobKey (阶段, 字段) 二元组
type blobKey struct {
	stage StageName
	field ContentField
}

// BlobRegistry 本地文件引用登记表
//
// 不变量：每个 (阶段, 字段) 对同时最多持有一个活跃引用。
// 替换时先释放旧引用再登记新引用；组件销毁时释放全部引用。
type BlobRegistry struct {
	minter   BlobMinter
	releases map[blobKey]func()
	logger   zerolog.Logger
}

// NewBlobRegistry 创建引用登记表
func NewBlobRegistry(minter BlobMinter, logger zerolog.Logger) *BlobRegistry {
	return &BlobRegistry{
		minter:   minter,
		releases: make(map[blobKey]func()),
		logger:   logger.With().Str("component", "reward.BlobRegistry").Logger(),
	}
}

// Assign 为 (阶段, 字段) 铸造新引用，返回引用地址
//
// 旧引用（如有）在登记新引用之前释放。path 为空表示清除该字段。
func (r *BlobRegistry) Assign(stage StageName, field ContentField, path string) (string, error) {
	r.releaseKey(blobKey{stage, field})

	if path == "" {
		return "", nil
	}

	ref, release, err := r.minter.Mint(path)
	if err != nil {
		return "", fmt.Errorf("no se pudo preparar el archivo %q: %w", path, err)
	}
	r.releases[blobKey{stage, field}] = release
	return ref, nil
}

// ReleaseAll 释放全部活跃引用（组件销毁时调用）
func (r *BlobRegistry) ReleaseAll() {
	for key := range r.releases {
		r.releaseKey(key)
	}
}

// Live 返回当前活跃引用数量
func (r *BlobRegistry) Live() int {
	return len(r.releases)
}

func (r *BlobRegistry) releaseKey(key blobKey) {
	if release, ok := r.releases[key]; ok {
		delete(r.releases, key)
		if release != nil {
			release()
		}
	}
}
