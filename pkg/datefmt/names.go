package datefmt

import "time"

var (
	shortWeekday = Options{Weekday: NameShort}
	longWeekday  = Options{Weekday: NameLong}
	longMonth    = Options{Month: NameLong}
	numericHour  = Options{Hour: true}
)

// DayOfWeekName returns the weekday name of t in locale.
// Any length other than NameLong yields the abbreviated name.
func DayOfWeekName(t time.Time, locale string, length NameLength) string {
	return defaultCache.DayOfWeekName(t, locale, length)
}

// MonthName returns the full month name of t in locale.
func MonthName(t time.Time, locale string) string {
	return defaultCache.MonthName(t, locale)
}

// HourLabel returns the numeric hour of t in locale, "3 PM" for 12-hour
// English locales and "15" (plus a locale suffix such as " Uhr") elsewhere.
func HourLabel(t time.Time, locale string) string {
	return defaultCache.HourLabel(t, locale)
}

// DayOfWeekName is like the package-level DayOfWeekName but uses c.
func (c *Cache) DayOfWeekName(t time.Time, locale string, length NameLength) string {
	if length == NameLong {
		return c.Get(locale, longWeekday).Format(t)
	}
	return c.Get(locale, shortWeekday).Format(t)
}

// MonthName is like the package-level MonthName but uses c.
func (c *Cache) MonthName(t time.Time, locale string) string {
	return c.Get(locale, longMonth).Format(t)
}

// HourLabel is like the package-level HourLabel but uses c.
func (c *Cache) HourLabel(t time.Time, locale string) string {
	return c.Get(locale, numericHour).Format(t)
}
