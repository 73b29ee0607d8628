// Package mount locates the filesystem root exposing the card's control
// directory.
//
// Ownership boundary:
// - candidate mount enumeration
// - volume label probing
// - label match against the fixed Eye-Fi volume id
package mount
