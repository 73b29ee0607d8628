package protocol

import (
	"encoding/binary"
	"fmt"
)

// DecodeControlRecord parses the fixed header prefix of a control channel
// block. Trailing padding bytes are ignored.
func DecodeControlRecord(b []byte) (ControlRecord, error) {
	if len(b) < ControlRecordSize {
		return ControlRecord{}, ErrTruncated
	}
	return ControlRecord{
		Op:         b[0],
		Subcommand: Subcommand(b[1]),
		Seq:        binary.BigEndian.Uint16(b[2:4]),
	}, nil
}

// DecodePascalString reads one length byte and exactly that many content
// bytes. Extra trailing bytes are not an error; the caller owns framing.
func DecodePascalString(b []byte) (PascalString, error) {
	if len(b) < 1 {
		return PascalString{}, ErrTruncated
	}
	n := int(b[0])
	if len(b)-1 < n {
		return PascalString{}, fmt.Errorf("%w: declared %d, have %d", ErrShortValue, n, len(b)-1)
	}
	value := make([]byte, n)
	copy(value, b[1:1+n])
	return PascalString{Length: uint8(n), Value: value}, nil
}

// DecodeVarByte reads the little-endian u16 length prefix and that many bytes.
func DecodeVarByte(b []byte) (VarByteResponse, error) {
	if len(b) < 2 {
		return VarByteResponse{}, ErrTruncated
	}
	n := int(binary.LittleEndian.Uint16(b[0:2]))
	if len(b)-2 < n {
		return VarByteResponse{}, fmt.Errorf("%w: declared %d, have %d", ErrShortValue, n, len(b)-2)
	}
	raw := make([]byte, n)
	copy(raw, b[2:2+n])
	return VarByteResponse{Length: uint16(n), Bytes: raw}, nil
}

// DecodeMacAddress parses a MAC address response. The length byte is fixed
// at six; anything else is malformed.
func DecodeMacAddress(b []byte) (MacAddress, error) {
	if len(b) < 1+macBytes {
		return MacAddress{}, ErrTruncated
	}
	if b[0] != macBytes {
		return MacAddress{}, fmt.Errorf("%w: got %d", ErrBadMacLength, b[0])
	}
	mac := MacAddress{Length: macBytes}
	copy(mac.MAC[:], b[1:1+macBytes])
	return mac, nil
}

// DecodeCardFirmwareInfo parses a firmware info response: a one-byte string
// count (always 1) followed by the firmware string.
func DecodeCardFirmwareInfo(b []byte) (CardFirmwareInfo, error) {
	if len(b) < 2 {
		return CardFirmwareInfo{}, ErrTruncated
	}
	if b[0] != fwStringCount {
		return CardFirmwareInfo{}, fmt.Errorf("%w: got %d", ErrBadStringCount, b[0])
	}
	info, err := DecodePascalString(b[1:])
	if err != nil {
		return CardFirmwareInfo{}, err
	}
	return CardFirmwareInfo{Info: info}, nil
}

// DecodeCardInfoAPIURL parses an API URL response.
func DecodeCardInfoAPIURL(b []byte) (CardInfoAPIURL, error) {
	key, err := DecodePascalString(b)
	if err != nil {
		return CardInfoAPIURL{}, err
	}
	return CardInfoAPIURL{Key: key}, nil
}

// DecodeCardInfoRspKey parses a card key or upload key response.
func DecodeCardInfoRspKey(b []byte) (CardInfoRspKey, error) {
	key, err := DecodePascalString(b)
	if err != nil {
		return CardInfoRspKey{}, err
	}
	return CardInfoRspKey{Key: key}, nil
}

// DecodeCardInfoLogLen parses the big-endian u32 pair of a log length
// response.
func DecodeCardInfoLogLen(b []byte) (CardInfoLogLen, error) {
	if len(b) < logLenRespSize {
		return CardInfoLogLen{}, ErrTruncated
	}
	return CardInfoLogLen{
		LogLen: binary.BigEndian.Uint32(b[0:4]),
		Val:    binary.BigEndian.Uint32(b[4:8]),
	}, nil
}

// DecodeIdleSeq reads the at-rest sequence field from the low four bytes of
// a response-control block. A short or absent block reads as zero, which
// the session treats as never-initialized.
func DecodeIdleSeq(b []byte) uint32 {
	if len(b) < IdleSeqSize {
		return 0
	}
	return binary.LittleEndian.Uint32(b[0:IdleSeqSize])
}
