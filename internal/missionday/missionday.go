// Package missionday maps instants to the calendar day a mission belongs to.
// Days roll over at midnight UTC+7 regardless of where the server runs.
package missionday

import (
	"time"

	"cloud.google.com/go/civil"
)

// Location is the fixed UTC+7 zone missions are keyed by.
var Location = time.FixedZone("UTC+7", 7*60*60)

// Of returns the mission day containing t.
func Of(t time.Time) civil.Date {
	return civil.DateOf(t.In(Location))
}

// Label formats a day as "02 Jan 2006", the key used for date-grouped mistakes.
func Label(d civil.Date) string {
	return d.In(time.UTC).Format("02 Jan 2006")
}

// NextAt returns the first instant strictly after now whose wall clock in
// Location reads hour:minute.
func NextAt(now time.Time, hour, minute int) time.Time {
	local := now.In(Location)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, Location)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
