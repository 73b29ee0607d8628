package observability

import "golang.org/x/sys/unix"

// MajorFaults reports the major page fault count of the current process.
// Diagnostic only; not part of protocol correctness.
func MajorFaults() (int64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, err
	}
	return ru.Majflt, nil
}
