package session

import (
	"time"

	"github.com/danmuck/eyefictl/internal/channel"
)

// Config defines the poll and buffer knobs of one session. Retry count and
// delay are explicit so tests can shrink the timeout.
type Config struct {
	// PollRetries bounds how many times the response-control channel is
	// read per exchange.
	PollRetries int
	// PollInterval is the fixed delay between polls.
	PollInterval time.Duration
	// BufSize is the card's transfer unit: the scratch buffer alignment,
	// control block padding size, and read cap. Must be a power of two.
	BufSize int
}

func DefaultConfig() Config {
	return Config{
		PollRetries:  50,
		PollInterval: 100 * time.Millisecond,
		BufSize:      channel.DefaultBufSize,
	}
}
