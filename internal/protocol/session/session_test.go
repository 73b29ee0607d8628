package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danmuck/eyefictl/internal/channel"
	"github.com/danmuck/eyefictl/internal/mount"
	"github.com/danmuck/eyefictl/internal/protocol"
	"github.com/danmuck/eyefictl/internal/testutil/testlog"
)

func testConfig() Config {
	return Config{
		PollRetries:  3,
		PollInterval: time.Millisecond,
		BufSize:      64,
	}
}

// card simulates the card side of the file channel.
type card struct {
	t  *testing.T
	ch *channel.Channels
}

func newCard(t *testing.T) (*card, string) {
	t.Helper()
	mnt := t.TempDir()
	if err := os.MkdirAll(filepath.Join(mnt, channel.ControlDir), 0o755); err != nil {
		t.Fatalf("mkdir control dir: %v", err)
	}
	return &card{t: t, ch: channel.New(channel.Resolve(mnt), 64)}, mnt
}

// answer stages a response pair: a control echo for seq and a payload.
func (c *card) answer(seq uint16, payload []byte) {
	c.t.Helper()
	if err := c.ch.Write(channel.ResponsePayload, payload); err != nil {
		c.t.Fatalf("card write rspm: %v", err)
	}
	rec := protocol.EncodeControlRecord(protocol.ControlRecord{Op: protocol.OpQuery, Subcommand: 0, Seq: seq})
	if err := c.ch.Write(channel.ResponseControl, rec); err != nil {
		c.t.Fatalf("card write rspc: %v", err)
	}
}

func (c *card) answerControlOnly(seq uint16) {
	c.t.Helper()
	rec := protocol.EncodeControlRecord(protocol.ControlRecord{Op: protocol.OpQuery, Subcommand: 0, Seq: seq})
	if err := c.ch.Write(channel.ResponseControl, rec); err != nil {
		c.t.Fatalf("card write rspc: %v", err)
	}
}

func readySession(t *testing.T) (*Session, *card) {
	t.Helper()
	testlog.Start(t)
	c, mnt := newCard(t)
	s := New(mount.Fixed(mnt), testConfig())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	return s, c
}

func TestInitColdStartSeedsSequence(t *testing.T) {
	s, _ := readySession(t)
	if s.State() != StateReady {
		t.Fatalf("unexpected state: %v", s.State())
	}
	if s.Sequence() != 0x1235 {
		t.Fatalf("cold-start sequence: got %#04x want 0x1235", s.Sequence())
	}
}

func TestInitKeepsNonZeroIdleSequence(t *testing.T) {
	testlog.Start(t)
	c, mnt := newCard(t)
	if err := c.ch.Write(channel.ResponseControl, protocol.EncodeIdleSeq(0x2222)); err != nil {
		t.Fatalf("write idle seq: %v", err)
	}
	s := New(mount.Fixed(mnt), testConfig())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if s.Sequence() != 0x2223 {
		t.Fatalf("warm-start sequence: got %#04x want 0x2223", s.Sequence())
	}
}

func TestInitZeroesResponsePayload(t *testing.T) {
	testlog.Start(t)
	c, mnt := newCard(t)
	if err := c.ch.Write(channel.ResponsePayload, []byte("stale")); err != nil {
		t.Fatalf("write stale rspm: %v", err)
	}
	s := New(mount.Fixed(mnt), testConfig())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	raw, err := c.ch.Read(channel.ResponsePayload)
	if err != nil {
		t.Fatalf("read rspm: %v", err)
	}
	if len(raw) != testConfig().BufSize {
		t.Fatalf("rspm not a full zeroed block: %d bytes", len(raw))
	}
	for i, b := range raw {
		if b != 0 {
			t.Fatalf("rspm byte %d not zero: %02x", i, b)
		}
	}
}

func TestInitNoCardPresent(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	s := New(mount.Fixed(filepath.Join(dir, "missing")), testConfig())
	err := s.Init()
	if !errors.Is(err, ErrCardNotPresent) {
		t.Fatalf("expected ErrCardNotPresent, got %v", err)
	}
	if s.State() != StateUnavailable {
		t.Fatalf("unexpected state: %v", s.State())
	}
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("read dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("channel files touched without a card: %v", entries)
	}
}

func TestInitRejectsNonPowerOfTwoBufSize(t *testing.T) {
	testlog.Start(t)
	_, mnt := newCard(t)
	cfg := testConfig()
	cfg.BufSize = 100
	s := New(mount.Fixed(mnt), cfg)
	if err := s.Init(); !errors.Is(err, ErrBadConfig) {
		t.Fatalf("expected ErrBadConfig, got %v", err)
	}
}

func TestIssueRequestNotReady(t *testing.T) {
	testlog.Start(t)
	s := New(mount.Fixed(t.TempDir()), testConfig())
	if _, err := s.IssueRequest(protocol.MacAddressSub); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}

func TestMACQuery(t *testing.T) {
	s, c := readySession(t)
	c.answer(s.Sequence(), []byte{0x06, 0x00, 0x11, 0x22, 0x33, 0x44, 0x55})

	mac, err := s.MAC()
	if err != nil {
		t.Fatalf("mac query: %v", err)
	}
	want := [6]byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}
	if mac.MAC != want {
		t.Fatalf("unexpected mac: % x", mac.MAC)
	}

	// The request must have hit the request-control channel as a full
	// zero-padded block carrying the query op and the answered sequence.
	raw, err := c.ch.Read(channel.RequestControl)
	if err != nil {
		t.Fatalf("read reqc: %v", err)
	}
	if len(raw) != testConfig().BufSize {
		t.Fatalf("reqc not padded to block size: %d", len(raw))
	}
	rec, err := protocol.DecodeControlRecord(raw)
	if err != nil {
		t.Fatalf("decode reqc: %v", err)
	}
	if rec.Op != protocol.OpQuery || rec.Subcommand != protocol.MacAddressSub {
		t.Fatalf("unexpected request record: %+v", rec)
	}
	if rec.Seq != s.Sequence()-1 {
		t.Fatalf("request seq mismatch: rec=%#04x next=%#04x", rec.Seq, s.Sequence())
	}
}

func TestFirmwareQueryScenario(t *testing.T) {
	s, c := readySession(t)
	c.answer(s.Sequence(), []byte{0x01, 0x05, '1', '.', '0', '.', '0'})

	fw, err := s.Firmware()
	if err != nil {
		t.Fatalf("firmware query: %v", err)
	}
	if fw.Info.String() != "1.0.0" {
		t.Fatalf("unexpected firmware info: %q", fw.Info.String())
	}
}

func TestSequenceMonotonicity(t *testing.T) {
	s, c := readySession(t)
	var seqs []uint16
	for i := 0; i < 4; i++ {
		seqs = append(seqs, s.Sequence())
		c.answer(s.Sequence(), []byte{0x06, 1, 2, 3, 4, 5, 6})
		if _, err := s.MAC(); err != nil {
			t.Fatalf("exchange %d: %v", i, err)
		}
	}
	for i := 1; i < len(seqs); i++ {
		if seqs[i] <= seqs[i-1] {
			t.Fatalf("sequence not strictly increasing: %#04x then %#04x", seqs[i-1], seqs[i])
		}
	}
}

func TestStaleResponseIsIgnored(t *testing.T) {
	s, c := readySession(t)
	before := s.Sequence()
	c.answerControlOnly(before - 1)

	_, err := s.IssueRequest(protocol.FirmwareInfo)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if s.State() != StateReady {
		t.Fatalf("timeout should leave session ready, state=%v", s.State())
	}
	if s.Sequence() != before+1 {
		t.Fatalf("sequence not advanced after timeout: %#04x", s.Sequence())
	}
}

func TestNewerSequenceIsDesync(t *testing.T) {
	s, c := readySession(t)
	c.answerControlOnly(s.Sequence() + 5)

	_, err := s.IssueRequest(protocol.FirmwareInfo)
	if !errors.Is(err, ErrSequenceDesync) {
		t.Fatalf("expected ErrSequenceDesync, got %v", err)
	}
	if s.State() == StateReady {
		t.Fatalf("desync must leave the ready state")
	}
	if _, err := s.IssueRequest(protocol.FirmwareInfo); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady after desync, got %v", err)
	}
}

func TestIssueCommandStagesArgument(t *testing.T) {
	s, c := readySession(t)
	c.answer(s.Sequence(), []byte{0x01, 0x00, 0x00})

	if err := s.SetTransferMode(protocol.SelectiveTransfer); err != nil {
		t.Fatalf("set transfer mode: %v", err)
	}

	raw, err := c.ch.Read(channel.RequestPayload)
	if err != nil {
		t.Fatalf("read reqm: %v", err)
	}
	arg, err := protocol.DecodeVarByte(raw)
	if err != nil {
		t.Fatalf("decode reqm: %v", err)
	}
	if arg.Length != 1 || arg.Bytes[0] != byte(protocol.SelectiveTransfer) {
		t.Fatalf("unexpected staged argument: %+v", arg)
	}

	rawCtl, err := c.ch.Read(channel.RequestControl)
	if err != nil {
		t.Fatalf("read reqc: %v", err)
	}
	rec, err := protocol.DecodeControlRecord(rawCtl)
	if err != nil {
		t.Fatalf("decode reqc: %v", err)
	}
	if rec.Op != protocol.OpSet || rec.Subcommand != protocol.TransferModeSub {
		t.Fatalf("unexpected command record: %+v", rec)
	}
}

func TestQueryRawRejectsUnknownSubcommand(t *testing.T) {
	s, _ := readySession(t)
	if _, err := s.QueryRaw(protocol.Subcommand(200)); !errors.Is(err, protocol.ErrUnknownSubcommand) {
		t.Fatalf("expected ErrUnknownSubcommand, got %v", err)
	}
}
