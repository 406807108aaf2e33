package datefmt

import (
	"strings"
	"sync"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// DefaultLocale is used when a locale tag is empty or cannot be matched.
const DefaultLocale = "en-US"

// Options selects the components a [Formatter] renders, in the spirit of
// Intl.DateTimeFormat options. Zero-valued fields are omitted.
type Options struct {
	Weekday NameLength // weekday name
	Month   NameLength // month name
	Hour    bool       // numeric hour in the locale's clock convention
}

// NameLength selects abbreviated or full names.
type NameLength int

const (
	// NameNone omits the component.
	NameNone NameLength = iota
	// NameShort renders abbreviated names ("Mon", "Jan").
	NameShort
	// NameLong renders full names ("Monday", "January").
	NameLong
)

// Formatter renders one fixed combination of date components for one locale.
// It is immutable and safe for concurrent use.
type Formatter struct {
	names  monday.Locale
	opts   Options
	hour12 bool
	suffix string
}

// Locale returns the resolved name table, e.g. "de_DE".
func (f *Formatter) Locale() string { return string(f.names) }

// Format renders t. Components appear in weekday, month, hour order,
// separated by a space.
func (f *Formatter) Format(t time.Time) string {
	parts := make([]string, 0, 3)
	switch f.opts.Weekday {
	case NameShort:
		parts = append(parts, monday.Format(t, "Mon", f.names))
	case NameLong:
		parts = append(parts, monday.Format(t, "Monday", f.names))
	}
	switch f.opts.Month {
	case NameShort:
		parts = append(parts, monday.Format(t, "Jan", f.names))
	case NameLong:
		parts = append(parts, monday.Format(t, "January", f.names))
	}
	if f.opts.Hour {
		parts = append(parts, f.hour(t))
	}
	return strings.Join(parts, " ")
}

// FormatLayout renders t with a Go reference-time layout using this
// formatter's name table.
func (f *Formatter) FormatLayout(t time.Time, layout string) string {
	return monday.Format(t, layout, f.names)
}

func (f *Formatter) hour(t time.Time) string {
	if f.hour12 {
		return t.Format("3 PM")
	}
	return t.Format("15") + f.suffix
}

// Cache memoizes formatters keyed by (locale, options). Entries are never
// evicted: the key space is the set of locale/option pairs an application
// actually renders, which is small.
type Cache struct {
	mu         sync.RWMutex
	formatters map[cacheKey]*Formatter
}

type cacheKey struct {
	locale string
	opts   Options
}

// NewCache creates an empty formatter cache.
func NewCache() *Cache {
	return &Cache{formatters: make(map[cacheKey]*Formatter)}
}

var defaultCache = NewCache()

// Default returns the process-wide formatter cache.
func Default() *Cache { return defaultCache }

// Get returns the memoized formatter for (locale, opts), creating it on first use.
func (c *Cache) Get(locale string, opts Options) *Formatter {
	key := cacheKey{locale: locale, opts: opts}

	c.mu.RLock()
	f, ok := c.formatters[key]
	c.mu.RUnlock()
	if ok {
		return f
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.formatters[key]; ok {
		return f
	}
	f = newFormatter(locale, opts)
	c.formatters[key] = f
	return f
}

// Len returns the number of cached formatters.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.formatters)
}

func newFormatter(locale string, opts Options) *Formatter {
	names, tag := resolveLocale(locale)
	f := &Formatter{names: names, opts: opts}
	f.hour12, f.suffix = hourConvention(names, tag)
	return f
}

// supportedLocales are the name tables we match requested tags against.
// The first entry is the fallback.
var supportedLocales = []monday.Locale{
	monday.LocaleEnUS,
	monday.LocaleEnGB,
	monday.LocaleDeDE,
	monday.LocaleFrFR,
	monday.LocaleEsES,
	monday.LocaleItIT,
	monday.LocaleNlNL,
	monday.LocalePtBR,
	monday.LocalePtPT,
	monday.LocaleRuRU,
	monday.LocalePlPL,
	monday.LocaleSvSE,
	monday.LocaleDaDK,
	monday.LocaleFiFI,
	monday.LocaleNbNO,
	monday.LocaleTrTR,
	monday.LocaleUkUA,
	monday.LocaleJaJP,
	monday.LocaleZhCN,
	monday.LocaleKoKR,
}

var (
	matcherOnce sync.Once
	matcher     language.Matcher
)

func localeMatcher() language.Matcher {
	matcherOnce.Do(func() {
		tags := make([]language.Tag, len(supportedLocales))
		for i, l := range supportedLocales {
			tags[i] = language.Make(strings.ReplaceAll(string(l), "_", "-"))
		}
		matcher = language.NewMatcher(tags)
	})
	return matcher
}

// resolveLocale maps a BCP-47 tag (underscores accepted) to a name table.
func resolveLocale(locale string) (monday.Locale, language.Tag) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return supportedLocales[0], language.AmericanEnglish
	}
	_, idx, conf := localeMatcher().Match(tag)
	if conf == language.No {
		return supportedLocales[0], language.AmericanEnglish
	}
	return supportedLocales[idx], tag
}

// hourConvention reports whether the locale uses a 12-hour clock for a bare
// numeric hour and which suffix follows a 24-hour value.
func hourConvention(names monday.Locale, tag language.Tag) (bool, string) {
	base, _ := tag.Base()
	if base.String() == "en" {
		region, _ := tag.Region()
		switch region.String() {
		case "GB", "IE":
			return false, ""
		}
		return true, ""
	}
	switch names {
	case monday.LocaleDeDE:
		return false, " Uhr"
	case monday.LocaleFrFR:
		return false, " h"
	case monday.LocaleJaJP:
		return false, "時"
	case monday.LocaleZhCN:
		return false, "时"
	case monday.LocaleKoKR:
		return false, "시"
	}
	return false, ""
}
