// Package dates implements the travel-date inference shared by flight and
// hotel parameter extraction.
package dates

import "time"

// Layout is the wire format for all travel dates.
const Layout = "2006-01-02"

// InferRange fills missing trip dates relative to now. With neither date the
// trip starts four weeks out and lasts one week; with only one date the
// other is placed seven days away. Unparseable inputs pass through
// unchanged for downstream validation to reject.
func InferRange(now time.Time, start, end string) (string, string) {
	switch {
	case start == "" && end == "":
		return now.AddDate(0, 0, 28).Format(Layout), now.AddDate(0, 0, 35).Format(Layout)
	case start != "" && end == "":
		s, err := time.Parse(Layout, start)
		if err != nil {
			return start, end
		}
		return start, s.AddDate(0, 0, 7).Format(Layout)
	case start == "" && end != "":
		e, err := time.Parse(Layout, end)
		if err != nil {
			return start, end
		}
		return e.AddDate(0, 0, -7).Format(Layout), end
	default:
		return start, end
	}
}
