package autolog

import "fmt"

const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// FormatDuration renders a millisecond count with the coarsest-to-finest
// unit breakdown its magnitude requires:
//
//	FormatDuration(10)       == "10 ms"
//	FormatDuration(1010)     == "1 s 010 ms"
//	FormatDuration(65010)    == "1 m 5 s 010 ms"
//	FormatDuration(3665010)  == "1 h 1 m 5 s 010 ms"
//	FormatDuration(87005010) == "1 day(s) 0 h 10 m 5 s 010 ms"
//
// The millisecond component is zero-padded to three digits whenever a larger
// unit is present. Precision never goes below the millisecond.
func FormatDuration(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	switch {
	case ms < msPerSecond:
		return fmt.Sprintf("%d ms", ms)
	case ms < msPerMinute:
		return fmt.Sprintf("%d s %03d ms",
			ms/msPerSecond, ms%msPerSecond)
	case ms < msPerHour:
		return fmt.Sprintf("%d m %d s %03d ms",
			ms/msPerMinute, (ms%msPerMinute)/msPerSecond, ms%msPerSecond)
	case ms < msPerDay:
		return fmt.Sprintf("%d h %d m %d s %03d ms",
			ms/msPerHour, (ms%msPerHour)/msPerMinute, (ms%msPerMinute)/msPerSecond, ms%msPerSecond)
	default:
		return fmt.Sprintf("%d day(s) %d h %d m %d s %03d ms",
			ms/msPerDay, (ms%msPerDay)/msPerHour, (ms%msPerHour)/msPerMinute,
			(ms%msPerMinute)/msPerSecond, ms%msPerSecond)
	}
}
