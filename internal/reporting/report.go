package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"usbnuke/internal/wipe"
)

// Report JSON отчёт о запуске затирания
type Report struct {
	RunID      string            `json:"run_id"`
	Version    string            `json:"version"`
	Timestamp  time.Time         `json:"timestamp"`
	Operations []OperationReport `json:"operations"`
	Summary    SummaryReport     `json:"summary"`
	ExitCode   int               `json:"exit_code"`
	Duration   string            `json:"duration"`
}

// OperationReport отчёт об одной операции затирания
type OperationReport struct {
	ID         string     `json:"id"`
	Device     string     `json:"device"`
	Standard   string     `json:"standard"`
	Passes     int        `json:"passes"`
	ChunkSize  int        `json:"chunk_size"`
	Status     string     `json:"status"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	BytesWiped uint64     `json:"bytes_wiped"`
	SpeedMBps  float64    `json:"speed_mbps"`
	Verified   *bool      `json:"verified,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// SummaryReport сводная информация по запуску
type SummaryReport struct {
	TotalDevices int     `json:"total_devices"`
	Completed    int     `json:"completed"`
	Failed       int     `json:"failed"`
	TotalBytes   uint64  `json:"total_bytes"`
	AverageSpeed float64 `json:"average_speed_mbps"`
	SuccessRate  float64 `json:"success_rate"`
}

// GenerateReport строит отчёт по завершённым операциям
func GenerateReport(version string, operations []*wipe.Operation, verified map[string]bool, startTime, endTime time.Time, exitCode int) *Report {
	report := &Report{
		RunID:      fmt.Sprintf("run_%d", startTime.UnixNano()),
		Version:    version,
		Timestamp:  startTime,
		Operations: make([]OperationReport, len(operations)),
		ExitCode:   exitCode,
		Duration:   endTime.Sub(startTime).String(),
	}

	var totalBytes uint64
	var totalSpeed float64
	completed := 0
	failed := 0

	for i, op := range operations {
		opReport := OperationReport{
			ID:         op.ID,
			Device:     op.Device,
			Standard:   op.Standard,
			Passes:     op.Passes,
			ChunkSize:  op.ChunkSize,
			Status:     op.Status,
			StartTime:  op.StartTime,
			EndTime:    op.EndTime,
			BytesWiped: op.BytesWiped,
			SpeedMBps:  op.SpeedMBps,
		}
		if op.Error != "" {
			opReport.Error = op.Error
		}
		if v, ok := verified[op.Device]; ok {
			verifiedCopy := v
			opReport.Verified = &verifiedCopy
		}
		report.Operations[i] = opReport

		totalBytes += op.BytesWiped
		totalSpeed += op.SpeedMBps
		switch op.Status {
		case "COMPLETED":
			completed++
		case "FAILED":
			failed++
		}
	}

	report.Summary = SummaryReport{
		TotalDevices: len(operations),
		Completed:    completed,
		Failed:       failed,
		TotalBytes:   totalBytes,
	}
	if len(operations) > 0 {
		report.Summary.AverageSpeed = totalSpeed / float64(len(operations))
		report.Summary.SuccessRate = float64(completed) / float64(len(operations)) * 100
	}

	return report
}

// SaveReport сохраняет отчёт в JSON файл в директории отчётов
func SaveReport(report *Report, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("ошибка создания директории отчётов: %w", err)
	}

	filename := filepath.Join(dir, fmt.Sprintf("usbnuke_report_%s.json", report.Timestamp.Format("20060102_150405")))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации отчёта: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("ошибка записи отчёта: %w", err)
	}

	return filename, nil
}
