package wipe

import (
	"crypto/rand"
	"io"
)

// DefaultChunkSize размер буфера записи по умолчанию (4MB)
const DefaultChunkSize = 4 * 1024 * 1024

// syncWriter устройство с последовательной записью и синхронизацией
type syncWriter interface {
	io.Writer
	Sync() error
}

// WritePass записывает паттерн прохода на весь диапазон [0, size) устройства.
// Запись строго последовательная, буфер ограничен chunkSize. После каждого
// чанка синхронно вызывается sink, после полной записи выполняется Sync.
// При ошибке I/O проход прерывается немедленно, без повторов; ошибка несёт
// достигнутое смещение в байтах.
func WritePass(target syncWriter, size uint64, spec PassSpec, chunkSize int, sink ProgressSink) error {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if sink == nil {
		sink = NopSink
	}

	// Пустой диапазон завершается сразу, без вызовов прогресса
	if size == 0 {
		return nil
	}

	buf := make([]byte, chunkSize)

	// Фиксированный паттерн заполняется один раз и переиспользуется.
	// Случайный буфер обновляется перед каждым чанком: повторное
	// использование одного случайного буфера даёт детектируемый
	// повторяющийся паттерн на носителе.
	if spec.Kind == PatternFixed {
		tilePattern(buf, spec.Pattern)
	}

	var written uint64
	for written < size {
		remaining := size - written
		toWrite := uint64(chunkSize)
		if remaining < toWrite {
			toWrite = remaining
		}

		if spec.Kind == PatternRandom {
			if _, err := rand.Read(buf[:toWrite]); err != nil {
				return &EntropyError{Err: err}
			}
		}

		// Запись чанка с обработкой коротких записей
		off := 0
		for off < int(toWrite) {
			n, err := target.Write(buf[off:toWrite])
			if n > 0 {
				off += n
				written += uint64(n)
			}
			if err != nil {
				return &IoError{Op: "write", Offset: written, Err: err}
			}
			if n == 0 {
				return &IoError{Op: "write", Offset: written, Err: io.ErrShortWrite}
			}
		}

		sink.Progress(ProgressInfo{
			Pass:         spec.Index,
			TotalPasses:  spec.Total,
			BytesWritten: written,
			PassSize:     size,
			Label:        spec.Label,
		})
	}

	if err := target.Sync(); err != nil {
		return &IoError{Op: "sync", Offset: written, Err: err}
	}

	return nil
}

// tilePattern заполняет буфер повторяющимся паттерном
func tilePattern(buf, pattern []byte) {
	if len(pattern) == 0 {
		return
	}
	for i := range buf {
		buf[i] = pattern[i%len(pattern)]
	}
}
