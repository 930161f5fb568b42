package security

import (
	"fmt"
	"os"
	"runtime"

	"usbnuke/internal/config"
	"usbnuke/internal/device"
)

// PreflightChecks проверяет, что запуск разрешён текущим окружением
func PreflightChecks(cfg *config.Config) error {
	if cfg == nil {
		cfg = config.Default()
	}

	if cfg.Security.RequireRoot && !IsRoot() {
		return fmt.Errorf("требуются права root")
	}

	return nil
}

// IsRoot проверяет права суперпользователя
func IsRoot() bool {
	if runtime.GOOS == "windows" {
		return false
	}
	return os.Geteuid() == 0
}

// CheckTarget проверяет, что устройство допустимо как цель затирания.
// Ошибка здесь блокирует операцию до любого обращения к устройству.
func CheckTarget(cfg *config.Config, dev *device.Device) error {
	if cfg == nil {
		cfg = config.Default()
	}

	for _, protected := range cfg.Security.ProtectedDevices {
		if dev.Path == protected {
			return fmt.Errorf("устройство %s в списке защищённых", dev.Path)
		}
	}

	if cfg.Security.RemovableOnly {
		if err := dev.Validate(); err != nil {
			return err
		}
	}

	// Порог из конфигурации не может опустить встроенный минимум
	minSize := cfg.Security.MinDeviceSize
	if minSize < device.MinDriveSize {
		minSize = device.MinDriveSize
	}
	if dev.Size < minSize {
		return fmt.Errorf("устройство %s меньше минимального размера: %d < %d", dev.Path, dev.Size, minSize)
	}

	if dev.HasSystemLabels() {
		return fmt.Errorf("устройство %s похоже на системный диск", dev.Path)
	}

	return nil
}
