package session

import (
	"fmt"

	"github.com/danmuck/eyefictl/internal/protocol"
)

// MAC queries the card's hardware address.
func (s *Session) MAC() (protocol.MacAddress, error) {
	raw, err := s.IssueRequest(protocol.MacAddressSub)
	if err != nil {
		return protocol.MacAddress{}, err
	}
	return protocol.DecodeMacAddress(raw)
}

// Firmware queries the card's firmware info string.
func (s *Session) Firmware() (protocol.CardFirmwareInfo, error) {
	raw, err := s.IssueRequest(protocol.FirmwareInfo)
	if err != nil {
		return protocol.CardFirmwareInfo{}, err
	}
	return protocol.DecodeCardFirmwareInfo(raw)
}

// APIURL queries the upload API URL the card is configured with.
func (s *Session) APIURL() (protocol.CardInfoAPIURL, error) {
	raw, err := s.IssueRequest(protocol.APIURL)
	if err != nil {
		return protocol.CardInfoAPIURL{}, err
	}
	return protocol.DecodeCardInfoAPIURL(raw)
}

// CardKey queries the card's key.
func (s *Session) CardKey() (protocol.CardInfoRspKey, error) {
	return s.keyQuery(protocol.CardKey)
}

// UploadKey queries the card's upload key.
func (s *Session) UploadKey() (protocol.CardInfoRspKey, error) {
	return s.keyQuery(protocol.UploadKey)
}

func (s *Session) keyQuery(sub protocol.Subcommand) (protocol.CardInfoRspKey, error) {
	raw, err := s.IssueRequest(sub)
	if err != nil {
		return protocol.CardInfoRspKey{}, err
	}
	return protocol.DecodeCardInfoRspKey(raw)
}

// LogLen queries the card's log length.
func (s *Session) LogLen() (protocol.CardInfoLogLen, error) {
	raw, err := s.IssueRequest(protocol.LogLen)
	if err != nil {
		return protocol.CardInfoLogLen{}, err
	}
	return protocol.DecodeCardInfoLogLen(raw)
}

// QueryRaw runs an info query and returns the undecoded payload. The
// subcommand must be one of the enumerated codes.
func (s *Session) QueryRaw(sub protocol.Subcommand) ([]byte, error) {
	if !sub.Known() {
		return nil, fmt.Errorf("%w: %#02x", protocol.ErrUnknownSubcommand, uint8(sub))
	}
	return s.IssueRequest(sub)
}

// TestBasic probes card liveness with the no-op subcommand.
func (s *Session) TestBasic() error {
	_, err := s.IssueRequest(protocol.UnknownFF)
	return err
}

// SetTransferMode switches how the card selects photos to upload.
func (s *Session) SetTransferMode(mode protocol.TransferMode) error {
	return s.setByte(protocol.TransferModeSub, byte(mode))
}

// SetEndless configures endless-mode behavior.
func (s *Session) SetEndless(v uint8) error {
	return s.setByte(protocol.Endless, v)
}

// SetWLANDisabled turns the card radio off (true) or on (false).
func (s *Session) SetWLANDisabled(disabled bool) error {
	v := byte(0)
	if disabled {
		v = 1
	}
	return s.setByte(protocol.WLANDisable, v)
}

func (s *Session) setByte(sub protocol.Subcommand, v byte) error {
	arg := protocol.VarByteResponse{Length: 1, Bytes: []byte{v}}
	_, err := s.IssueCommand(sub, &arg)
	return err
}
