package wipe

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// ScanPrefixSize размер проверяемого префикса устройства (1MB)
const ScanPrefixSize = 1024 * 1024

// signature известная сигнатура таблицы разделов или файловой системы
type signature struct {
	name   string
	magic  []byte
	offset int64 // -1 — поиск по всему префиксу
}

var knownSignatures = []signature{
	{name: "MBR", magic: []byte{0x55, 0xAA}, offset: 510},
	{name: "ext2/3/4", magic: []byte{0x53, 0xEF}, offset: 0x438},
	{name: "GPT", magic: []byte("EFI PART"), offset: -1},
	{name: "NTFS", magic: []byte("NTFS"), offset: -1},
	{name: "FAT32", magic: []byte("FAT32"), offset: -1},
}

// Verify выполняет эвристическую проверку качества затирания: читает первый
// мегабайт устройства и ищет известные сигнатуры. Возвращает true, если ни
// одна сигнатура не найдена.
//
// Ограничение: проверяется только начало устройства. Сигнатура за пределами
// префикса не будет обнаружена, поэтому положительный результат не является
// доказательством полного затирания.
func Verify(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, &DeviceOpenError{Path: path, Err: err}
	}
	defer file.Close()

	buf := make([]byte, ScanPrefixSize)
	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, &IoError{Op: "read", Offset: uint64(n), Err: err}
	}

	return len(ScanSignatures(buf[:n])) == 0, nil
}

// ScanSignatures возвращает имена сигнатур, найденных в префиксе устройства.
// MBR и ext* проверяются по каноническим смещениям, остальные — по всему
// буферу.
func ScanSignatures(prefix []byte) []string {
	var found []string
	for _, sig := range knownSignatures {
		if sig.offset >= 0 {
			end := sig.offset + int64(len(sig.magic))
			if end <= int64(len(prefix)) && bytes.Equal(prefix[sig.offset:end], sig.magic) {
				found = append(found, sig.name)
			}
			continue
		}
		if bytes.Contains(prefix, sig.magic) {
			found = append(found, sig.name)
		}
	}
	return found
}
