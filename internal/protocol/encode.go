package protocol

import "encoding/binary"

const (
	// ControlRecordSize is the meaningful prefix of a control channel file;
	// the rest of the block is zero padding.
	ControlRecordSize = 4

	// IdleSeqSize is the little-endian u32 the card leaves in the
	// response-control file between exchanges.
	IdleSeqSize = 4

	macBytes       = 6
	fwStringCount  = 1
	logLenRespSize = 8
)

// SwapEndian32 reverses the byte order of a 32-bit word. Control headers are
// defined big-endian; conversion happens at the channel boundary, never by
// assuming native order.
func SwapEndian32(src uint32) uint32 {
	var dest uint32
	dest |= (src & 0xff000000) >> 24
	dest |= (src & 0x00ff0000) >> 8
	dest |= (src & 0x0000ff00) << 8
	dest |= (src & 0x000000ff) << 24
	return dest
}

// EncodeControlRecord lays out rec in its wire form.
func EncodeControlRecord(rec ControlRecord) []byte {
	buf := make([]byte, ControlRecordSize)
	buf[0] = rec.Op
	buf[1] = byte(rec.Subcommand)
	binary.BigEndian.PutUint16(buf[2:4], rec.Seq)
	return buf
}

// EncodePascalString lays out p as one length byte followed by its content.
func EncodePascalString(p PascalString) []byte {
	buf := make([]byte, 1+len(p.Value))
	buf[0] = uint8(len(p.Value))
	copy(buf[1:], p.Value)
	return buf
}

// EncodeVarByte lays out v with its little-endian u16 length prefix.
func EncodeVarByte(v VarByteResponse) []byte {
	buf := make([]byte, 2+len(v.Bytes))
	binary.LittleEndian.PutUint16(buf[0:2], uint16(len(v.Bytes)))
	copy(buf[2:], v.Bytes)
	return buf
}

// EncodeMacAddress lays out m as its fixed length byte plus six MAC bytes.
func EncodeMacAddress(m MacAddress) []byte {
	buf := make([]byte, 1+macBytes)
	buf[0] = m.Length
	copy(buf[1:], m.MAC[:])
	return buf
}

// EncodeCardFirmwareInfo lays out the string-count prefix followed by the
// firmware string.
func EncodeCardFirmwareInfo(f CardFirmwareInfo) []byte {
	return append([]byte{fwStringCount}, EncodePascalString(f.Info)...)
}

// EncodeCardInfoAPIURL lays out the API URL response.
func EncodeCardInfoAPIURL(u CardInfoAPIURL) []byte {
	return EncodePascalString(u.Key)
}

// EncodeCardInfoRspKey lays out a key response.
func EncodeCardInfoRspKey(k CardInfoRspKey) []byte {
	return EncodePascalString(k.Key)
}

// EncodeCardInfoLogLen lays out the big-endian u32 pair.
func EncodeCardInfoLogLen(l CardInfoLogLen) []byte {
	buf := make([]byte, logLenRespSize)
	binary.BigEndian.PutUint32(buf[0:4], l.LogLen)
	binary.BigEndian.PutUint32(buf[4:8], l.Val)
	return buf
}

// EncodeIdleSeq lays out the at-rest sequence field the card keeps in the
// response-control file. Little-endian u32, unlike the in-flight field.
func EncodeIdleSeq(seq uint32) []byte {
	buf := make([]byte, IdleSeqSize)
	binary.LittleEndian.PutUint32(buf, seq)
	return buf
}
