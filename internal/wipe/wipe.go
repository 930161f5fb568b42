package wipe

import (
	"fmt"
	"io"
	"os"
	"time"

	"usbnuke/internal/logging"
)

// Operation результат операции затирания устройства
type Operation struct {
	ID         string
	Device     string
	Standard   string
	Passes     int
	ChunkSize  int
	Status     string // RUNNING, COMPLETED, FAILED
	StartTime  time.Time
	EndTime    *time.Time
	BytesWiped uint64
	SpeedMBps  float64
	Error      string
}

// passTarget устройство для выполнения проходов: последовательная запись,
// позиционирование и синхронизация
type passTarget interface {
	io.Writer
	io.Seeker
	Sync() error
}

// Nuke необратимо затирает весь диапазон устройства по выбранному стандарту.
// Проходы выполняются строго последовательно; следующий проход начинается
// только после завершения Sync предыдущего. Отмены нет — операция идёт до
// конца или прерывается завершением процесса; повторный запуск всегда
// начинается с первого прохода. Вызывать только после подтверждения
// оператором (подтверждение — ответственность CLI). При logger == nil
// журнал аудита не ведётся.
func Nuke(path string, standard WipeStandard, passes, chunkSize int, sink ProgressSink, logger *logging.AuditLogger) (*Operation, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	op := &Operation{
		ID:        fmt.Sprintf("nuke_%d", time.Now().UnixNano()),
		Device:    path,
		Standard:  string(standard),
		ChunkSize: chunkSize,
		Status:    "RUNNING",
		StartTime: time.Now(),
	}

	// Расписание строится до любого I/O: ошибка конфигурации
	// не должна тронуть устройство
	specs, err := SchedulePasses(standard, passes)
	if err != nil {
		return op.fail(err), err
	}
	op.Passes = len(specs)

	file, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		openErr := &DeviceOpenError{Path: path, Err: err}
		return op.fail(openErr), openErr
	}
	defer file.Close()

	size, err := resolveExtent(file)
	if err != nil {
		return op.fail(err), err
	}

	logger.Log("INFO", "Начало затирания", "device", path, "standard", standard, "passes", len(specs), "size", size)

	bytesWiped, err := runPasses(file, size, specs, chunkSize, sink, logger)
	op.BytesWiped = bytesWiped
	if err != nil {
		logger.Log("ERROR", "Затирание прервано", "device", path, "error", err.Error())
		return op.fail(err), err
	}

	op.Status = "COMPLETED"
	now := time.Now()
	op.EndTime = &now
	if elapsed := now.Sub(op.StartTime).Seconds(); elapsed > 0 {
		op.SpeedMBps = float64(op.BytesWiped) / (1024 * 1024) / elapsed
	}

	logger.Log("INFO", "Затирание завершено", "device", path, "bytes", op.BytesWiped, "speed", op.SpeedMBps)
	return op, nil
}

// runPasses выполняет проходы по порядку. При ошибке останавливается
// немедленно: оставшиеся проходы не выполняются.
func runPasses(target passTarget, size uint64, specs []PassSpec, chunkSize int, sink ProgressSink, logger *logging.AuditLogger) (uint64, error) {
	var total uint64
	for _, spec := range specs {
		logger.Log("INFO", "Проход затирания", "pass", spec.Index, "total", spec.Total, "pattern", spec.Label)

		if _, err := target.Seek(0, io.SeekStart); err != nil {
			return total, &IoError{Op: "seek", Offset: 0, Err: err}
		}

		if err := WritePass(target, size, spec, chunkSize, sink); err != nil {
			return total, err
		}
		total += size
	}
	return total, nil
}

// resolveExtent определяет размер устройства позиционированием в конец
// и возвращает указатель в начало. Размер фиксируется один раз на операцию.
func resolveExtent(file *os.File) (uint64, error) {
	size, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, &IoError{Op: "seek", Offset: 0, Err: err}
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return 0, &IoError{Op: "seek", Offset: 0, Err: err}
	}
	return uint64(size), nil
}

func (op *Operation) fail(err error) *Operation {
	op.Status = "FAILED"
	op.Error = err.Error()
	now := time.Now()
	op.EndTime = &now
	return op
}
