package wipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writePrefixFile(t *testing.T, prefix []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "device.img")
	require.NoError(t, os.WriteFile(path, prefix, 0644))
	return path
}

func TestVerifyCleanDevice(t *testing.T) {
	path := writePrefixFile(t, make([]byte, ScanPrefixSize))

	clean, err := Verify(path)
	require.NoError(t, err)
	require.True(t, clean)
}

func TestVerifyDeviceSmallerThanPrefix(t *testing.T) {
	path := writePrefixFile(t, make([]byte, 1000))

	clean, err := Verify(path)
	require.NoError(t, err)
	require.True(t, clean)
}

func TestVerifyMBRSignature(t *testing.T) {
	prefix := make([]byte, ScanPrefixSize)
	prefix[510] = 0x55
	prefix[511] = 0xAA
	path := writePrefixFile(t, prefix)

	clean, err := Verify(path)
	require.NoError(t, err)
	require.False(t, clean)
}

func TestVerifyMissingDevice(t *testing.T) {
	_, err := Verify("/nonexistent/device")
	require.Error(t, err)
}

func TestScanSignatures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(prefix []byte)
		found  []string
	}{
		{
			name:   "чистый префикс",
			mutate: func(prefix []byte) {},
			found:  nil,
		},
		{
			name: "MBR по смещению 510",
			mutate: func(prefix []byte) {
				prefix[510] = 0x55
				prefix[511] = 0xAA
			},
			found: []string{"MBR"},
		},
		{
			name: "байты MBR вне канонического смещения не считаются",
			mutate: func(prefix []byte) {
				prefix[200] = 0x55
				prefix[201] = 0xAA
			},
			found: nil,
		},
		{
			name: "ext магия по смещению 0x438",
			mutate: func(prefix []byte) {
				prefix[0x438] = 0x53
				prefix[0x439] = 0xEF
			},
			found: []string{"ext2/3/4"},
		},
		{
			name: "GPT заголовок",
			mutate: func(prefix []byte) {
				copy(prefix[512:], "EFI PART")
			},
			found: []string{"GPT"},
		},
		{
			name: "NTFS в произвольном месте",
			mutate: func(prefix []byte) {
				copy(prefix[70000:], "NTFS")
			},
			found: []string{"NTFS"},
		},
		{
			name: "FAT32 в загрузочном секторе",
			mutate: func(prefix []byte) {
				copy(prefix[82:], "FAT32   ")
			},
			found: []string{"FAT32"},
		},
		{
			name: "несколько сигнатур",
			mutate: func(prefix []byte) {
				prefix[510] = 0x55
				prefix[511] = 0xAA
				copy(prefix[3:], "NTFS")
			},
			found: []string{"MBR", "NTFS"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prefix := make([]byte, ScanPrefixSize)
			tc.mutate(prefix)
			require.Equal(t, tc.found, ScanSignatures(prefix))
		})
	}
}
