package catalog

import (
	"time"
)

// Clock supplies the current time to components that stamp records with dates.
// Injecting it keeps date-dependent logic deterministic in tests.
type Clock func() time.Time

// SystemClock is the default Clock, backed by time.Now.
func SystemClock() time.Time {
	return time.Now()
}
