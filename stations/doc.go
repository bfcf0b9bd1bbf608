// Package stations resolves free-text station input to canonical station
// records carrying the numeric identifier the timetable feeds are keyed by.
package stations
