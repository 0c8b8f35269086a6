package result

import (
	"fmt"
	"time"

	"github.com/arloliu/pmwire/errs"
)

// Timestamp is a result timestamp in seconds and nanoseconds since the Unix epoch.
//
// Records that carry microsecond timestamps (the wire result and the legacy
// archive record) keep only the first three digits of Nsec.
type Timestamp struct {
	Sec  int64
	Nsec int32
}

// FromTime converts t into a Timestamp.
func FromTime(t time.Time) Timestamp {
	return Timestamp{Sec: t.Unix(), Nsec: int32(t.Nanosecond())}
}

// Time returns the timestamp as a time.Time.
func (t Timestamp) Time() time.Time {
	return time.Unix(t.Sec, int64(t.Nsec))
}

// Usec returns the microsecond part of the timestamp.
func (t Timestamp) Usec() int32 {
	return t.Nsec / 1000
}

// TruncateMicro drops sub-microsecond precision.
func (t Timestamp) TruncateMicro() Timestamp {
	return Timestamp{Sec: t.Sec, Nsec: t.Nsec - t.Nsec%1000}
}

// Validate checks that Nsec lies in [0, 1e9).
func (t Timestamp) Validate() error {
	if t.Nsec < 0 || t.Nsec >= 1e9 {
		return fmt.Errorf("%w: timestamp nanoseconds %d outside [0, 1e9)", errs.ErrInvalidResult, t.Nsec)
	}

	return nil
}
