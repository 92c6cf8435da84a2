package model

import (
	"fmt"
	"time"
)

// STAC catalogs return sensing datetimes in several near-RFC3339 shapes
// depending on the provider and collection, so parsing has to be lenient
// and try them in order.

// StandardTimeLayout is the preferred format when writing sensing times back out
const StandardTimeLayout = "2006-01-02T15:04:05.999999999Z" // time.RFC3339Nano, without actual Z offset

var sensingTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
}

// ParseSensingTime is a drop-in replacement for time.Parse, but matching against
// every sensing-time layout the supported catalogs are known to emit
func ParseSensingTime(sensingTime string) (time.Time, error) {
	for _, layout := range sensingTimeLayouts {
		if output, err := time.Parse(layout, sensingTime); err == nil {
			return output, nil
		}
	}
	return time.Time{}, fmt.Errorf("Date could not be parsed by any expected time format: `%s`", sensingTime)
}

// SensingDate truncates a sensing time to day precision in UTC; scenes from
// adjacent tiles share a sensing date even when their timestamps differ
func SensingDate(sensingTime time.Time) time.Time {
	t := sensingTime.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
