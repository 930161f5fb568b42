//go:build !linux

package device

import (
	"fmt"
	"io"
	"os"
	"runtime"
)

// Discover на платформах кроме Linux не поддерживается
func Discover(all bool) ([]Device, error) {
	return nil, fmt.Errorf("перечисление устройств не поддерживается на %s", runtime.GOOS)
}

// ExactSize определяет размер позиционированием в конец
func ExactSize(path string) (uint64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("ошибка открытия устройства %s: %w", path, err)
	}
	defer file.Close()

	end, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("ошибка определения размера %s: %w", path, err)
	}
	return uint64(end), nil
}
