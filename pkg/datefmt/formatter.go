package datefmt

import (
	"strconv"
	"strings"
	"time"
)

// FormatFunc renders one header label for t in the requested locale.
type FormatFunc func(t time.Time, locale string) string

// DateFormatter holds optional per-granularity label overrides supplied by
// the host. Overrides replace label text only; positions and segment
// grouping are unaffected. A nil *DateFormatter is valid and overrides nothing.
type DateFormatter struct {
	FormatDay   FormatFunc
	FormatMonth FormatFunc
	FormatYear  FormatFunc
	FormatWeek  FormatFunc
	FormatHour  FormatFunc
}

// Day returns the day override, or nil.
func (f *DateFormatter) Day() FormatFunc {
	if f == nil {
		return nil
	}
	return f.FormatDay
}

// Month returns the month override, or nil.
func (f *DateFormatter) Month() FormatFunc {
	if f == nil {
		return nil
	}
	return f.FormatMonth
}

// Year returns the year override, or nil.
func (f *DateFormatter) Year() FormatFunc {
	if f == nil {
		return nil
	}
	return f.FormatYear
}

// Week returns the week override, or nil.
func (f *DateFormatter) Week() FormatFunc {
	if f == nil {
		return nil
	}
	return f.FormatWeek
}

// Hour returns the hour override, or nil.
func (f *DateFormatter) Hour() FormatFunc {
	if f == nil {
		return nil
	}
	return f.FormatHour
}

// Or calls fn when set and fallback otherwise.
func (fn FormatFunc) Or(t time.Time, locale string, fallback func() string) string {
	if fn != nil {
		return fn(t, locale)
	}
	return fallback()
}

// weekPlaceholder is replaced by the ISO week number after layout formatting.
const weekPlaceholder = "{week}"

// LayoutFormatter describes label overrides as Go reference-time layouts
// ("Mon 2", "January", "2006", "W{week}", "15:04"). Names are localized
// through the formatter cache. The placeholder {week} expands to the
// ISO-8601 week number. Empty fields keep the built-in labels.
type LayoutFormatter struct {
	Day   string `toml:"day" json:"day,omitempty" yaml:"day"`
	Month string `toml:"month" json:"month,omitempty" yaml:"month"`
	Year  string `toml:"year" json:"year,omitempty" yaml:"year"`
	Week  string `toml:"week" json:"week,omitempty" yaml:"week"`
	Hour  string `toml:"hour" json:"hour,omitempty" yaml:"hour"`
}

// IsZero reports whether no layout is set.
func (l LayoutFormatter) IsZero() bool {
	return l == LayoutFormatter{}
}

// DateFormatter converts the layouts into a DateFormatter backed by c.
// It returns nil when no layout is set. A nil c uses [Default].
func (l LayoutFormatter) DateFormatter(c *Cache) *DateFormatter {
	if l.IsZero() {
		return nil
	}
	if c == nil {
		c = defaultCache
	}
	return &DateFormatter{
		FormatDay:   layoutFunc(c, l.Day),
		FormatMonth: layoutFunc(c, l.Month),
		FormatYear:  layoutFunc(c, l.Year),
		FormatWeek:  layoutFunc(c, l.Week),
		FormatHour:  layoutFunc(c, l.Hour),
	}
}

func layoutFunc(c *Cache, layout string) FormatFunc {
	if layout == "" {
		return nil
	}
	return func(t time.Time, locale string) string {
		f := c.Get(locale, Options{})
		// Layout digits are reference-time tokens, so the week number is
		// spliced in after each fragment is formatted.
		fragments := strings.Split(layout, weekPlaceholder)
		week := strconv.Itoa(ISOWeek(t))
		out := make([]string, len(fragments))
		for i, frag := range fragments {
			if frag != "" {
				out[i] = f.FormatLayout(t, frag)
			}
		}
		return strings.Join(out, week)
	}
}
