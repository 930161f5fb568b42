//go:build linux

package device

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Discover перечисляет блочные устройства через /sys/block.
// При all=false возвращаются только съёмные накопители.
func Discover(all bool) ([]Device, error) {
	entries, err := os.ReadDir("/sys/block")
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения /sys/block: %w", err)
	}

	attrs := partitionAttrs()

	var devices []Device
	for _, entry := range entries {
		name := entry.Name()

		// Пропускаем виртуальные устройства
		if strings.HasPrefix(name, "loop") ||
			strings.HasPrefix(name, "ram") ||
			strings.HasPrefix(name, "dm-") {
			continue
		}

		sysPath := filepath.Join("/sys/block", name)
		removable := readSysFile(sysPath, "removable") == "1"
		if !all && !removable {
			continue
		}

		sectors, _ := strconv.ParseUint(readSysFile(sysPath, "size"), 10, 64)
		size := sectors * 512 // размер в /sys всегда в 512-байтных секторах
		if exact, err := ExactSize("/dev/" + name); err == nil && exact > 0 {
			size = exact // ioctl даёт точный размер в байтах, если устройство доступно
		}

		dev := Device{
			Path:       "/dev/" + name,
			Name:       name,
			Size:       size,
			Model:      readSysOr(sysPath, "device/model", "Unknown"),
			Vendor:     readSysOr(sysPath, "device/vendor", "Unknown"),
			Removable:  removable,
			Partitions: discoverPartitions(sysPath, name, attrs),
		}
		devices = append(devices, dev)
	}

	return devices, nil
}

// ExactSize возвращает точный размер блочного устройства через ioctl
// BLKGETSIZE64, с fallback на позиционирование в конец для обычных файлов.
func ExactSize(path string) (uint64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("ошибка открытия устройства %s: %w", path, err)
	}
	defer file.Close()

	var size uint64
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, file.Fd(), unix.BLKGETSIZE64, uintptr(unsafe.Pointer(&size)))
	if errno == 0 {
		return size, nil
	}

	// Не блочное устройство, определяем размер позиционированием
	end, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("ошибка определения размера %s: %w", path, err)
	}
	return uint64(end), nil
}

// discoverPartitions ищет разделы устройства в его sysfs-директории.
// Метки и файловые системы берутся из attrs (см. partitionAttrs).
func discoverPartitions(sysPath, devName string, attrs map[string]partAttrs) []Partition {
	entries, err := os.ReadDir(sysPath)
	if err != nil {
		return nil
	}

	var parts []Partition
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, devName) {
			continue
		}

		partPath := filepath.Join(sysPath, name)
		numStr := readSysFile(partPath, "partition")
		num, err := strconv.Atoi(numStr)
		if err != nil {
			continue
		}

		sectors, _ := strconv.ParseUint(readSysFile(partPath, "size"), 10, 64)
		parts = append(parts, Partition{
			Path:       "/dev/" + name,
			Number:     num,
			Size:       sectors * 512,
			Filesystem: attrs[name].Filesystem,
			Label:      attrs[name].Label,
		})
	}
	return parts
}

// partAttrs атрибуты раздела, которых нет в sysfs
type partAttrs struct {
	Filesystem string
	Label      string
}

// partitionAttrs собирает файловые системы и метки разделов через lsblk.
// Если lsblk недоступен, возвращает nil: разделы остаются без меток.
func partitionAttrs() map[string]partAttrs {
	out, err := exec.Command("lsblk", "-J", "-o", "NAME,FSTYPE,LABEL").Output()
	if err != nil {
		return nil
	}
	return parseLsblk(out)
}

type lsblkNode struct {
	Name     string      `json:"name"`
	Fstype   string      `json:"fstype"`
	Label    string      `json:"label"`
	Children []lsblkNode `json:"children"`
}

// parseLsblk разбирает JSON-вывод lsblk в карту имя устройства → атрибуты
func parseLsblk(data []byte) map[string]partAttrs {
	var doc struct {
		Blockdevices []lsblkNode `json:"blockdevices"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}

	attrs := make(map[string]partAttrs)
	var walk func(nodes []lsblkNode)
	walk = func(nodes []lsblkNode) {
		for _, node := range nodes {
			if node.Fstype != "" || node.Label != "" {
				attrs[node.Name] = partAttrs{Filesystem: node.Fstype, Label: node.Label}
			}
			walk(node.Children)
		}
	}
	walk(doc.Blockdevices)
	return attrs
}

func readSysFile(dir, name string) string {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func readSysOr(dir, name, fallback string) string {
	if v := readSysFile(dir, name); v != "" {
		return v
	}
	return fallback
}
