package mount

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/danmuck/eyefictl/internal/protocol"
)

const procMounts = "/proc/self/mounts"

var fatFilesystems = map[string]bool{
	"vfat":  true,
	"msdos": true,
	"exfat": true,
}

func listFATMounts() ([]Candidate, error) {
	f, err := os.Open(procMounts)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseMounts(f)
}

// parseMounts extracts FAT-backed mounts from an fstab-format listing.
// The kernel escapes spaces and other specials in mount paths as \ooo
// octal sequences, the same encoding used for raw card string dumps.
func parseMounts(r io.Reader) ([]Candidate, error) {
	var out []Candidate
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			continue
		}
		if !fatFilesystems[fields[2]] {
			continue
		}
		out = append(out, Candidate{
			Device: protocol.UnescapeOctal(fields[0]),
			Dir:    protocol.UnescapeOctal(fields[1]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
