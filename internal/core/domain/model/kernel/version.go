package kernel

import "time"

// VersionPrecision matches PostgreSQL timestamptz resolution.
const VersionPrecision = time.Microsecond

// VersionStamp normalizes t into the updatedAt value persisted and compared by
// optimistic concurrency checks.
func VersionStamp(t time.Time) time.Time {
	return t.UTC().Truncate(VersionPrecision)
}

// SameVersion reports whether two stamps denote the same version once normalized.
func SameVersion(a, b time.Time) bool {
	return VersionStamp(a).Equal(VersionStamp(b))
}
