// Package datefmt provides the locale-aware date helpers used by the
// calendar header.
//
// # Overview
//
// The header needs a handful of localized strings per tick: month names,
// short and long weekday names, a numeric hour and the ISO-8601 week number.
// This package produces them from a BCP-47 locale tag ("en-US", "de",
// "pt-BR", ...):
//
//	datefmt.MonthName(t, "de-DE")                    // "Januar"
//	datefmt.DayOfWeekName(t, "fr", datefmt.NameShort) // "lun."
//	datefmt.ISOWeek(t)                               // 1..53
//	datefmt.HourLabel(t, "en-US")                    // "3 PM"
//
// # Formatter cache
//
// Resolving a locale tag to a name table means matching it against the
// supported locales, which is the expensive step. [Cache] memoizes one
// [Formatter] per (locale, [Options]) pair. The package-level helpers use
// [Default]; layout code takes a *Cache so tests can isolate cache state
// with [NewCache].
//
// # Custom formatting
//
// Hosts override the built-in labels per granularity with a [DateFormatter].
// Each field is optional; a nil field falls back to the locale formatter.
// [LayoutFormatter] builds a DateFormatter from Go reference-time layouts,
// which is how configuration files express custom formats.
package datefmt
