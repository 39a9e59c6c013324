package mail

import (
	"fmt"
	"sort"
	"time"

	"github.com/goodsign/monday"
)

// longLayouts holds the long-form date layout per supported locale,
// e.g. "June 1, 2027" for en_US and "1 de junho de 2027" for pt_BR.
var longLayouts = map[monday.Locale]string{
	monday.LocaleEnUS: "January 2, 2006",
	monday.LocaleEnGB: "2 January 2006",
	monday.LocalePtBR: "2 de January de 2006",
	monday.LocalePtPT: "2 de January de 2006",
	monday.LocaleEsES: "2 de January de 2006",
	monday.LocaleFrFR: "2 January 2006",
	monday.LocaleDeDE: "2. January 2006",
}

// DateFormatter renders timestamps as localized long dates in UTC.
type DateFormatter struct {
	locale monday.Locale
	layout string
}

// NewDateFormatter returns a formatter for locale (e.g. "en_US", "pt_BR").
func NewDateFormatter(locale string) (DateFormatter, error) {
	l := monday.Locale(locale)
	layout, ok := longLayouts[l]
	if !ok {
		return DateFormatter{}, fmt.Errorf("mail.NewDateFormatter: unsupported locale %q (supported: %v)", locale, SupportedLocales())
	}
	return DateFormatter{locale: l, layout: layout}, nil
}

// Long formats t as a long date.
func (f DateFormatter) Long(t time.Time) string {
	return monday.Format(t.UTC(), f.layout, f.locale)
}

// SupportedLocales lists the locales NewDateFormatter accepts, sorted.
func SupportedLocales() []string {
	out := make([]string, 0, len(longLayouts))
	for l := range longLayouts {
		out = append(out, string(l))
	}
	sort.Strings(out)
	return out
}
