package security

import (
	"testing"

	"github.com/stretchr/testify/require"

	"usbnuke/internal/config"
	"usbnuke/internal/device"
)

func removableDevice(path string) *device.Device {
	return &device.Device{
		Path:      path,
		Size:      16 * 1024 * 1024 * 1024,
		Removable: true,
	}
}

func TestCheckTargetProtectedDevice(t *testing.T) {
	cfg := config.Default()
	cfg.Security.ProtectedDevices = []string{"/dev/sda"}

	require.Error(t, CheckTarget(cfg, removableDevice("/dev/sda")))
	require.NoError(t, CheckTarget(cfg, removableDevice("/dev/sdb")))
}

func TestCheckTargetRemovableOnly(t *testing.T) {
	cfg := config.Default()
	cfg.Security.ProtectedDevices = nil
	cfg.Security.RemovableOnly = true

	dev := removableDevice("/dev/sdb")
	dev.Removable = false
	require.Error(t, CheckTarget(cfg, dev))

	cfg.Security.RemovableOnly = false
	require.NoError(t, CheckTarget(cfg, dev))
}

func TestCheckTargetEnforcesMinDriveSize(t *testing.T) {
	// Встроенный минимум действует и при нулевом пороге в конфигурации
	cfg := config.Default()
	cfg.Security.ProtectedDevices = nil
	cfg.Security.MinDeviceSize = 0

	dev := removableDevice("/dev/sdb")
	dev.Size = 2 * 1024 * 1024 * 1024
	require.Error(t, CheckTarget(cfg, dev))

	dev.Size = device.MinDriveSize
	require.NoError(t, CheckTarget(cfg, dev))
}

func TestCheckTargetRemovableOnlyValidates(t *testing.T) {
	cfg := config.Default()
	cfg.Security.ProtectedDevices = nil
	cfg.Security.RemovableOnly = true

	// Съёмное, но меньше минимума — отбрасывается валидацией устройства
	dev := removableDevice("/dev/sdb")
	dev.Size = 1024 * 1024 * 1024
	require.Error(t, CheckTarget(cfg, dev))
}

func TestCheckTargetMinDeviceSize(t *testing.T) {
	cfg := config.Default()
	cfg.Security.ProtectedDevices = nil
	cfg.Security.MinDeviceSize = 32 * 1024 * 1024 * 1024

	require.Error(t, CheckTarget(cfg, removableDevice("/dev/sdb")))
}

func TestCheckTargetSystemLabels(t *testing.T) {
	cfg := config.Default()
	cfg.Security.ProtectedDevices = nil

	dev := removableDevice("/dev/sdb")
	dev.Partitions = []device.Partition{{Number: 1, Label: "EFI"}}
	require.Error(t, CheckTarget(cfg, dev))
}

func TestPreflightChecksWithoutRootRequirement(t *testing.T) {
	cfg := config.Default()
	cfg.Security.RequireRoot = false
	require.NoError(t, PreflightChecks(cfg))
}
