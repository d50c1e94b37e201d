package timezone

import "time"

// ICT is Indochina Time (UTC+7), the only zone the agency operates in.
var ICT = time.FixedZone("ICT", 7*60*60)

// Today is midnight of the current ICT day.
func Today(now time.Time) time.Time {
	n := now.In(ICT)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, ICT)
}

// ParseDate reads a YYYY-MM-DD travel date as an ICT calendar day.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, ICT)
}

func FormatDate(t time.Time) string {
	return t.In(ICT).Format("Mon, 02 Jan 2006")
}

func FormatDateTime(t time.Time) string {
	return t.In(ICT).Format("02 Jan 2006 15:04 ICT")
}
