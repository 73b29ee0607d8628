package protocol

import "errors"

var (
	ErrTruncated         = errors.New("protocol: truncated data")
	ErrInvalidLength     = errors.New("protocol: invalid length")
	ErrShortValue        = errors.New("protocol: declared length exceeds available bytes")
	ErrUnknownSubcommand = errors.New("protocol: unknown subcommand")
	ErrBadMacLength      = errors.New("protocol: mac address length is not 6")
	ErrBadStringCount    = errors.New("protocol: unexpected string count prefix")
)
