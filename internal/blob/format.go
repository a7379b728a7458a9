package blob

import (
	"math"
	"strconv"
	"time"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// DisplayDateLayout mirrors the zh-CN toLocaleString form, e.g. "2024/3/7 09:05:01".
const DisplayDateLayout = "2006/1/2 15:04:05"

// FormatFileSize renders n with base-1024 units and at most two decimals:
// 0 → "0 Bytes", 1536 → "1.5 KB". Sizes past the largest unit stay in GB.
func FormatFileSize(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}

	v := float64(n)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

// FormatDate renders t in loc using DisplayDateLayout. A nil loc means UTC.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DisplayDateLayout)
}
