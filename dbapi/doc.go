// Package dbapi is the HTTP client for the Deutsche Bahn marketplace APIs:
// the station catalog (JSON) and the timetable plan/changes feeds (XML).
//
// Every call carries its own timeout and a bounded exponential-backoff retry
// policy. Callers that need a stricter overall deadline pass it through the
// context; retries stop as soon as that deadline is exceeded.
package dbapi
