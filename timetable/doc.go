// Package timetable reconciles the baseline (planned) timetable feed with
// the live-changes feed into a single set of stop events and assembles the
// rolling departure window from them.
//
// Both feeds are parsed through one shared line-label normalization so the
// merge join compares like with like. The baseline fetch is cached per
// (station, date, hour) with a short TTL; live data is always fetched fresh
// and treated as an enhancement, never a prerequisite.
package timetable
