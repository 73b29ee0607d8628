package mount

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// FAT boot sector field positions. The volume label sits at byte 43 on
// FAT12/16 and byte 71 on FAT32, 11 bytes, space padded; the filesystem
// type string sits 11 bytes behind it in both variants.
const (
	bootSectorSize = 512

	fat16LabelOff = 43
	fat16TypeOff  = 54
	fat32LabelOff = 71
	fat32TypeOff  = 82

	labelLen  = 11
	fsTypeLen = 8
)

// ReadFATLabel reads the volume label from a FAT boot sector. The device may
// be a block device or a filesystem image.
func ReadFATLabel(device string) (string, error) {
	f, err := os.Open(device)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sector [bootSectorSize]byte
	if _, err := io.ReadFull(f, sector[:]); err != nil {
		return "", fmt.Errorf("mount: short boot sector on %s: %w", device, err)
	}
	return labelFromBootSector(sector[:])
}

func labelFromBootSector(sector []byte) (string, error) {
	if fsType(sector, fat32TypeOff) == "FAT32" {
		return trimLabel(sector[fat32LabelOff : fat32LabelOff+labelLen]), nil
	}
	if t := fsType(sector, fat16TypeOff); t == "FAT12" || t == "FAT16" || t == "FAT" {
		return trimLabel(sector[fat16LabelOff : fat16LabelOff+labelLen]), nil
	}
	return "", fmt.Errorf("mount: no FAT signature in boot sector")
}

func fsType(sector []byte, off int) string {
	return strings.TrimRight(string(sector[off:off+fsTypeLen]), " ")
}

func trimLabel(raw []byte) string {
	return strings.TrimRight(string(raw), " \x00")
}
