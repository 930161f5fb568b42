package wipe

import (
	"io"
	"os"
)

// QuickZoneSize размер зоны быстрого затирания в начале и конце устройства (1MB)
const QuickZoneSize = 1024 * 1024

// QuickWipe затирает нулями первый и последний мегабайт устройства.
// Этого достаточно для уничтожения таблиц разделов и суперблоков перед
// переразметкой, но данные в середине устройства остаются.
func QuickWipe(path string) error {
	file, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return &DeviceOpenError{Path: path, Err: err}
	}
	defer file.Close()

	size, err := resolveExtent(file)
	if err != nil {
		return err
	}
	if size == 0 {
		return nil
	}

	zone := uint64(QuickZoneSize)
	if size < zone {
		zone = size
	}
	zeros := make([]byte, zone)

	if _, err := file.Write(zeros); err != nil {
		return &IoError{Op: "write", Offset: 0, Err: err}
	}

	// Хвост затирается только если не перекрывается с началом
	if size > QuickZoneSize {
		tail := int64(size) - QuickZoneSize
		if _, err := file.Seek(tail, io.SeekStart); err != nil {
			return &IoError{Op: "seek", Offset: uint64(tail), Err: err}
		}
		if _, err := file.Write(zeros); err != nil {
			return &IoError{Op: "write", Offset: uint64(tail), Err: err}
		}
	}

	if err := file.Sync(); err != nil {
		return &IoError{Op: "sync", Offset: size, Err: err}
	}

	return nil
}
