// Package protocol owns the Eye-Fi control wire contract.
//
// Ownership boundary:
// - control record header primitives
// - per-subcommand payload codecs
// - octal escape decoding for raw card strings
package protocol
