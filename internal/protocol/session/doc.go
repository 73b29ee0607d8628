// Package session owns the stateful host side of the card control protocol.
//
// Ownership boundary:
// - initialize lifecycle: locate, align, clear, sequence sync
// - bounded response polling and staleness/desync policy
// - typed query and command surface over the file channels
package session
