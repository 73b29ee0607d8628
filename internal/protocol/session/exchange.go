package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/eyefictl/internal/channel"
	"github.com/danmuck/eyefictl/internal/observability"
	"github.com/danmuck/eyefictl/internal/protocol"
)

// IssueRequest sends an info query and returns the raw response payload
// once the card echoes the request's sequence number.
func (s *Session) IssueRequest(sub protocol.Subcommand) ([]byte, error) {
	return s.exchange(protocol.OpQuery, sub, nil)
}

// IssueCommand sends a config command, optionally staging an argument on
// the request-payload channel first, and returns the raw response payload.
func (s *Session) IssueCommand(sub protocol.Subcommand, arg *protocol.VarByteResponse) ([]byte, error) {
	return s.exchange(protocol.OpSet, sub, arg)
}

func (s *Session) exchange(op byte, sub protocol.Subcommand, arg *protocol.VarByteResponse) ([]byte, error) {
	if s.state != StateReady {
		return nil, ErrNotReady
	}
	start := time.Now()
	seq := s.seq

	if arg != nil {
		if err := s.writeBlock(channel.RequestPayload, protocol.EncodeVarByte(*arg)); err != nil {
			s.fail("io_error", sub, start)
			return nil, err
		}
	}

	rec := protocol.ControlRecord{Op: op, Subcommand: sub, Seq: seq}
	log.Debug().Str("subcommand", sub.String()).Uint16("seq", seq).Msg("request sent")
	if err := s.writeBlock(channel.RequestControl, protocol.EncodeControlRecord(rec)); err != nil {
		s.fail("io_error", sub, start)
		return nil, err
	}

	attempts, err := s.poll(seq)
	observability.AddPollRetries(attempts)
	s.advance()
	if err != nil {
		outcome := "io_error"
		switch {
		case errors.Is(err, ErrTimeout):
			outcome = "timeout"
		case errors.Is(err, ErrSequenceDesync):
			outcome = "desync"
		}
		observability.RecordExchange(sub.String(), outcome, time.Since(start))
		return nil, err
	}

	payload, err := s.ch.Read(channel.ResponsePayload)
	if err != nil {
		observability.RecordExchange(sub.String(), "io_error", time.Since(start))
		return nil, err
	}
	observability.RecordExchange(sub.String(), "ok", time.Since(start))
	return payload, nil
}

// writeBlock stages b at the front of the aligned scratch buffer, zero
// padded to the transfer unit, and writes it durably. A failed durable
// write is session-fatal: the host cannot know what the card will see.
func (s *Session) writeBlock(id channel.ID, b []byte) error {
	if len(b) > len(s.buf) {
		return fmt.Errorf("%w: %d bytes exceed transfer unit %d", channel.ErrIO, len(b), len(s.buf))
	}
	clear(s.buf)
	copy(s.buf, b)
	if err := s.ch.Write(id, s.buf); err != nil {
		s.state = StateUnavailable
		return err
	}
	return nil
}

// poll reads the response-control channel until it echoes want. Older
// sequences are stale leftovers and are ignored; a newer sequence means
// the host and card disagree about history, which ends the session.
func (s *Session) poll(want uint16) (int, error) {
	for attempt := 0; attempt < s.cfg.PollRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(s.cfg.PollInterval)
		}
		raw, err := s.ch.Read(channel.ResponseControl)
		if errors.Is(err, channel.ErrNotFound) {
			continue
		}
		if err != nil {
			s.state = StateUnavailable
			return attempt, err
		}
		rec, err := protocol.DecodeControlRecord(raw)
		if err != nil {
			// Block still being written by the card.
			continue
		}
		switch {
		case rec.Seq == want:
			return attempt, nil
		case rec.Seq < want:
			log.Trace().Uint16("stale", rec.Seq).Uint16("want", want).Msg("ignoring stale response")
		default:
			s.state = StateUnavailable
			return attempt, fmt.Errorf("%w: sent %#04x, card reports %#04x", ErrSequenceDesync, want, rec.Seq)
		}
	}
	return s.cfg.PollRetries, fmt.Errorf("%w: after %d polls", ErrTimeout, s.cfg.PollRetries)
}

func (s *Session) fail(outcome string, sub protocol.Subcommand, start time.Time) {
	observability.RecordExchange(sub.String(), outcome, time.Since(start))
}
