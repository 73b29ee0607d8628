package channel

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/unix"
)

// DefaultBufSize is the card's transfer unit. Control file reads are capped
// at this size and zeroing writes exactly this many bytes.
const DefaultBufSize = 16 * 1024

var (
	ErrNotFound = errors.New("channel: control file not found")
	ErrIO       = errors.New("channel: control file i/o failed")
)

// Channels performs raw reads and writes against one mount's control files.
// It keeps no state across calls; every write is synced before returning
// because the card polls the on-medium contents, not a host buffer.
type Channels struct {
	paths   Paths
	bufSize int
}

// New returns Channels over the given resolved paths. bufSize must be the
// card's transfer unit; zero selects DefaultBufSize.
func New(paths Paths, bufSize int) *Channels {
	if bufSize <= 0 {
		bufSize = DefaultBufSize
	}
	return &Channels{paths: paths, bufSize: bufSize}
}

// BufSize reports the transfer unit in use.
func (c *Channels) BufSize() int {
	return c.bufSize
}

// Read maps the channel file read-only and returns a copy of its contents,
// up to the transfer unit.
func (c *Channels) Read(id ID) ([]byte, error) {
	path := c.paths.For(id)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: open %s: %v", ErrIO, path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %v", ErrIO, path, err)
	}
	size := int(st.Size())
	if size > c.bufSize {
		size = c.bufSize
	}
	if size == 0 {
		return nil, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap %s: %v", ErrIO, path, err)
	}
	out := make([]byte, size)
	copy(out, data)
	if err := unix.Munmap(data); err != nil {
		return nil, fmt.Errorf("%w: munmap %s: %v", ErrIO, path, err)
	}
	log.Trace().Str("channel", id.String()).Int("bytes", size).Msg("channel read")
	return out, nil
}

// Write truncates the channel file and writes b durably. A failed sync is
// reported, never swallowed: an un-synced request is invisible to the card.
func (c *Channels) Write(id ID, b []byte) error {
	path := c.paths.For(id)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrIO, path, err)
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		return fmt.Errorf("%w: write %s: %v", ErrIO, path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("%w: sync %s: %v", ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrIO, path, err)
	}
	log.Trace().Str("channel", id.String()).Int("bytes", len(b)).Msg("channel write")
	return nil
}

// Zero durably writes size zero bytes, clearing stale state so a previous
// exchange cannot be mistaken for a new one.
func (c *Channels) Zero(id ID, size int) error {
	return c.Write(id, make([]byte, size))
}

// Drain reads and discards any pending channel contents. A missing file
// counts as already drained.
func (c *Channels) Drain(id ID) error {
	_, err := c.Read(id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
