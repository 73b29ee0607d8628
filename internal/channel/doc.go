// Package channel owns raw I/O against the four Eye-Fi control files.
//
// Ownership boundary:
// - channel id to path resolution under one mount
// - durable (synced) writes and zeroing
// - read-only mapped reads
package channel
