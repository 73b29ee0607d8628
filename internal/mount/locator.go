package mount

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// VolumeID is the fixed volume label every Eye-Fi card carries.
const VolumeID = "AA52-6922"

var ErrCardNotFound = errors.New("mount: no eye-fi card found")

// Locator finds the mount point of the card's filesystem.
type Locator interface {
	Locate() (string, error)
}

// Candidate is one mounted filesystem to probe.
type Candidate struct {
	Device string
	Dir    string
}

// Scanner probes each candidate's volume label and returns the first mount
// whose label equals Want. A failed probe means "does not match"; the scan
// continues. Protocol semantics never leak into this layer.
type Scanner struct {
	Want  string
	List  func() ([]Candidate, error)
	Label func(device string) (string, error)
}

// NewCardLocator returns a Scanner wired for the reference platform:
// mounted FAT filesystems probed through their boot sector label.
func NewCardLocator() *Scanner {
	return &Scanner{
		Want:  VolumeID,
		List:  listFATMounts,
		Label: ReadFATLabel,
	}
}

func (s *Scanner) Locate() (string, error) {
	candidates, err := s.List()
	if err != nil {
		log.Debug().Err(err).Msg("mount enumeration failed")
		return "", fmt.Errorf("%w: %v", ErrCardNotFound, err)
	}
	for _, c := range candidates {
		label, err := s.Label(c.Device)
		if err != nil {
			log.Debug().Str("device", c.Device).Err(err).Msg("label probe failed, skipping")
			continue
		}
		if label == s.Want {
			log.Debug().Str("device", c.Device).Str("mount", c.Dir).Msg("eye-fi card located")
			return c.Dir, nil
		}
	}
	return "", ErrCardNotFound
}

// Fixed is a Locator pinned to one mount point, bypassing the scan.
type Fixed string

func (f Fixed) Locate() (string, error) {
	if _, err := os.Stat(string(f)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCardNotFound, err)
	}
	return string(f), nil
}
