package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"
)

func newTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()

	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试默认设置值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings == nil {
		t.Fatal("DefaultSettings() returned nil")
	}
	if settings.MusicVolume != 0.7 {
		t.Errorf("MusicVolume: got %v, want 0.7", settings.MusicVolume)
	}
	if settings.SoundVolume != 0.8 {
		t.Errorf("SoundVolume: got %v, want 0.8", settings.SoundVolume)
	}
	if !settings.MusicEnabled {
		t.Error("MusicEnabled: got false, want true")
	}
	if !settings.SoundEnabled {
		t.Error("SoundEnabled: got false, want true")
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if !settings.CameraEnabled {
		t.Error("CameraEnabled: got false, want true")
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}

	settings := sm.GetSettings()
	if settings == nil {
		t.Fatal("GetSettings() returned nil in degraded mode")
	}
	if settings.MusicVolume != 0.7 {
		t.Errorf("Degraded mode MusicVolume: got %v, want 0.7", settings.MusicVolume)
	}

	// 降级模式下 Save 不报错
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode: %v", err)
	}
}

// TestSettingsLoadSave 测试设置的保存与重新加载
func TestSettingsLoadSave(t *testing.T) {
	m := newTestGdata(t, "test_settings_load_save")

	sm1, err := NewSettingsManager(m, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	sm1.SetMusicVolume(0.3)
	sm1.SetSoundEnabled(false)
	sm1.SetFullscreen(true)
	sm1.SetCameraEnabled(false)
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2, err := NewSettingsManager(m, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSettingsManager() (reload) error: %v", err)
	}
	settings := sm2.GetSettings()
	if settings.MusicVolume != 0.3 {
		t.Errorf("reloaded MusicVolume: got %v, want 0.3", settings.MusicVolume)
	}
	if settings.SoundEnabled {
		t.Error("reloaded SoundEnabled: got true, want false")
	}
	if !settings.Fullscreen {
		t.Error("reloaded Fullscreen: got false, want true")
	}
	if settings.CameraEnabled {
		t.Error("reloaded CameraEnabled: got true, want false")
	}
}

// TestVolumeClamping 测试音量范围限制
func TestVolumeClamping(t *testing.T) {
	sm, _ := NewSettingsManager(nil, zerolog.Nop())

	sm.SetMusicVolume(1.5)
	if got := sm.GetSettings().MusicVolume; got != 1.0 {
		t.Errorf("MusicVolume after 1.5: got %v, want 1.0", got)
	}
	sm.SetSoundVolume(-0.2)
	if got := sm.GetSettings().SoundVolume; got != 0.0 {
		t.Errorf("SoundVolume after -0.2: got %v, want 0.0", got)
	}
}
