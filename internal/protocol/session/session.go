package session

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/eyefictl/internal/channel"
	"github.com/danmuck/eyefictl/internal/mount"
	"github.com/danmuck/eyefictl/internal/protocol"
)

// SeedSequence is the fixed starting value used when the card has never
// written a sequence number.
const SeedSequence = 0x1234

// State tracks the session lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateLocating
	StateAligning
	StateClearing
	StateSequenceSync
	StateReady
	StateUnavailable
)

var stateNames = map[State]string{
	StateUninitialized: "uninitialized",
	StateLocating:      "locating",
	StateAligning:      "aligning",
	StateClearing:      "clearing",
	StateSequenceSync:  "sequence_sync",
	StateReady:         "ready",
	StateUnavailable:   "unavailable",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "invalid"
}

// Session owns one card exchange at a time: the current sequence number,
// the aligned scratch buffer, and the channel handles. Not safe for
// concurrent use; run one session per worker if concurrency is needed.
type Session struct {
	cfg     Config
	locator mount.Locator

	ch  *channel.Channels
	mnt string
	buf []byte
	seq uint16

	state State
}

// New returns an uninitialized session. Init must succeed before any
// request or command is issued.
func New(locator mount.Locator, cfg Config) *Session {
	return &Session{cfg: cfg, locator: locator}
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Sequence reports the sequence number the next exchange will carry.
func (s *Session) Sequence() uint16 {
	return s.seq
}

// Mount reports the located card mount point, empty before Init.
func (s *Session) Mount() string {
	return s.mnt
}

// Init walks the session to Ready: locate the card, align the scratch
// buffer, clear stale channel state, and negotiate the sequence number.
// ErrCardNotPresent is recoverable; call Init again later.
func (s *Session) Init() error {
	if s.state == StateReady {
		return nil
	}
	if s.cfg.BufSize <= 0 || s.cfg.BufSize&(s.cfg.BufSize-1) != 0 {
		return fmt.Errorf("%w: got %d", ErrBadConfig, s.cfg.BufSize)
	}

	s.state = StateLocating
	mnt, err := s.locator.Locate()
	if err != nil {
		s.state = StateUnavailable
		return fmt.Errorf("%w: %v", ErrCardNotPresent, err)
	}
	s.mnt = mnt

	s.state = StateAligning
	s.buf = alignedBuffer(s.cfg.BufSize, s.cfg.BufSize)
	s.ch = channel.New(channel.Resolve(mnt), s.cfg.BufSize)

	s.state = StateClearing
	if err := s.ch.Zero(channel.ResponsePayload, s.cfg.BufSize); err != nil {
		s.state = StateUnavailable
		return err
	}
	for _, id := range []channel.ID{channel.RequestPayload, channel.RequestControl, channel.ResponseControl} {
		if err := s.ch.Drain(id); err != nil {
			s.state = StateUnavailable
			return err
		}
	}

	s.state = StateSequenceSync
	if err := s.syncSequence(); err != nil {
		s.state = StateUnavailable
		return err
	}

	s.state = StateReady
	log.Debug().Str("mount", mnt).Uint16("seq", s.seq).Msg("session ready")
	return nil
}

// syncSequence reads the idle sequence field and derives the first outgoing
// sequence number. The at-rest field is a little-endian u32; in-flight
// records carry a big-endian u16. The two encodings are preserved as-is.
func (s *Session) syncSequence() error {
	raw, err := s.ch.Read(channel.ResponseControl)
	if err != nil && !errors.Is(err, channel.ErrNotFound) {
		return err
	}
	idle := protocol.DecodeIdleSeq(raw)
	if idle == 0 {
		idle = SeedSequence
	}
	if idle >= math.MaxUint16 {
		return fmt.Errorf("%w: idle value %#x", ErrSequenceExhausted, idle)
	}
	s.seq = uint16(idle) + 1
	return nil
}

// advance moves the sequence past the exchange just attempted, answered or
// not, so a late response cannot be mistaken for the next request's answer.
func (s *Session) advance() {
	if s.seq == math.MaxUint16 {
		log.Error().Msg("sequence space exhausted, session unusable")
		s.state = StateUnavailable
		return
	}
	s.seq++
}
