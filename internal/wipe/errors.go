package wipe

import (
	"errors"
	"fmt"
)

// ErrInvalidPassCount возвращается при количестве проходов меньше 1
// для стандартов с настраиваемым числом проходов
var ErrInvalidPassCount = errors.New("количество проходов должно быть не меньше 1")

// DeviceOpenError ошибка открытия устройства
type DeviceOpenError struct {
	Path string
	Err  error
}

func (e *DeviceOpenError) Error() string {
	return fmt.Sprintf("не удалось открыть устройство %s: %v", e.Path, e.Err)
}

func (e *DeviceOpenError) Unwrap() error {
	return e.Err
}

// IoError ошибка ввода-вывода во время прохода.
// Offset — смещение в байтах, достигнутое к моменту сбоя.
type IoError struct {
	Op     string // write/seek/sync
	Offset uint64
	Err    error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("ошибка %s на смещении %d: %v", e.Op, e.Offset, e.Err)
}

func (e *IoError) Unwrap() error {
	return e.Err
}

// EntropyError ошибка чтения источника случайных данных ОС
type EntropyError struct {
	Err error
}

func (e *EntropyError) Error() string {
	return fmt.Sprintf("ошибка чтения источника энтропии: %v", e.Err)
}

func (e *EntropyError) Unwrap() error {
	return e.Err
}
