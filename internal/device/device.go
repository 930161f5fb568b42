package device

import (
	"fmt"
	"strings"
)

// MinDriveSize минимальный размер накопителя для работы с утилитой (4GB)
const MinDriveSize = 4 * 1024 * 1024 * 1024

// Device описывает съёмный накопитель
type Device struct {
	Path       string
	Name       string
	Size       uint64
	Model      string
	Vendor     string
	Removable  bool
	Partitions []Partition
}

// Partition описывает раздел накопителя
type Partition struct {
	Path       string
	Number     int
	Size       uint64
	Filesystem string
	Label      string
}

// Validate проверяет, что устройство пригодно для операций затирания
func (d *Device) Validate() error {
	if !d.Removable {
		return fmt.Errorf("устройство %s не является съёмным", d.Path)
	}
	if d.Size < MinDriveSize {
		return fmt.Errorf("устройство %s слишком маленькое: %d байт (минимум %d)", d.Path, d.Size, uint64(MinDriveSize))
	}
	return nil
}

// HasSystemLabels проверяет признаки системного диска по меткам разделов
func (d *Device) HasSystemLabels() bool {
	for _, part := range d.Partitions {
		label := strings.ToLower(part.Label)
		if label == "efi" ||
			strings.Contains(label, "system") ||
			strings.Contains(label, "windows") ||
			strings.Contains(label, "recovery") {
			return true
		}
	}
	return false
}
