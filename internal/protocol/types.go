package protocol

// ControlRecord is the fixed header written to the request-control channel
// and echoed back on the response-control channel. On the wire it is
// {op u8, subcommand u8, seq u16 BE}; the writer pads the block with zeros.
type ControlRecord struct {
	Op         byte
	Subcommand Subcommand
	Seq        uint16
}

// PascalString is a length-prefixed byte string with no terminator.
type PascalString struct {
	Length uint8
	Value  []byte
}

func (p PascalString) String() string {
	return string(p.Value)
}

// VarByteResponse is a variable-length opaque payload. Its length field is
// the one little-endian integer in the protocol.
type VarByteResponse struct {
	Length uint16
	Bytes  []byte
}

// CardInfoRequest is a typed info query issued by the host.
type CardInfoRequest struct {
	Op         byte
	Subcommand Subcommand
}

// CardConfigCommand is a typed mutation issued by the host, optionally
// carrying an argument on the request-payload channel.
type CardConfigCommand struct {
	Op         byte
	Subcommand Subcommand
	Arg        *VarByteResponse
}

// MacAddress is the response to a MAC address query. Length is always 6.
type MacAddress struct {
	Length uint8
	MAC    [macBytes]byte
}

// CardFirmwareInfo is the response to a firmware info query.
type CardFirmwareInfo struct {
	Info PascalString
}

// CardInfoAPIURL is the response to an API URL query.
type CardInfoAPIURL struct {
	Key PascalString
}

// CardInfoRspKey is the response to a card key or upload key query.
type CardInfoRspKey struct {
	Key PascalString
}

// CardInfoLogLen is the response to a log length query.
type CardInfoLogLen struct {
	LogLen uint32
	Val    uint32
}
