package location

import (
	geo "github.com/kellydunn/golang-geo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"go.viam.com/compass/utils"
)

const (
	keyNorth       = "location_north"
	keySouth       = "location_south"
	keyEast        = "location_east"
	keyWest        = "location_west"
	keyGetting     = "getting_location"
	keyUnavailable = "cannot_get_location"

	// coordinateSeparator sits between latitude and longitude in Point.
	coordinateSeparator = "    "
)

var (
	supported = []language.Tag{language.English, language.Chinese}
	matcher   = language.NewMatcher(supported)
	messages  = newCatalog()
)

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range map[language.Tag]map[string]string{
		language.English: {
			keyNorth:       "%s N",
			keySouth:       "%s S",
			keyEast:        "%s E",
			keyWest:        "%s W",
			keyGetting:     "Getting location...",
			keyUnavailable: "Cannot get location",
		},
		language.Chinese: {
			keyNorth:       "北纬 %s",
			keySouth:       "南纬 %s",
			keyEast:        "东经 %s",
			keyWest:        "西经 %s",
			keyGetting:     "正在获取位置...",
			keyUnavailable: "无法获取位置",
		},
	} {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// IsChinese reports whether tag is any Chinese variant.
func IsChinese(tag language.Tag) bool {
	base, _ := tag.Base()
	zh, _ := language.Chinese.Base()
	return base == zh
}

// Formatter renders coordinates with hemisphere labels in one language. Unsupported
// languages fall back to English.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// NewFormatter returns a Formatter for the closest supported match of tag.
func NewFormatter(tag language.Tag) *Formatter {
	_, idx, _ := matcher.Match(tag)
	matched := supported[idx]
	return &Formatter{
		tag:     matched,
		printer: message.NewPrinter(matched, message.Catalog(messages)),
	}
}

// Language returns the language the formatter settled on.
func (f *Formatter) Language() language.Tag {
	return f.tag
}

// Latitude formats lat with N for lat >= 0 and S otherwise. A non-finite lat is not a fix.
func (f *Formatter) Latitude(lat float64) string {
	if !utils.IsFinite(lat) {
		return f.gettingLocation()
	}
	if lat >= 0 {
		return f.printer.Sprintf(message.Key(keyNorth, "%s N"), FormatDMS(lat).String())
	}
	return f.printer.Sprintf(message.Key(keySouth, "%s S"), FormatDMS(-lat).String())
}

// Longitude formats lon with E for lon >= 0 and W otherwise. A non-finite lon is not a fix.
func (f *Formatter) Longitude(lon float64) string {
	if !utils.IsFinite(lon) {
		return f.gettingLocation()
	}
	if lon >= 0 {
		return f.printer.Sprintf(message.Key(keyEast, "%s E"), FormatDMS(lon).String())
	}
	return f.printer.Sprintf(message.Key(keyWest, "%s W"), FormatDMS(-lon).String())
}

// Point formats a fix as latitude then longitude. A nil point, or one with a non-finite
// coordinate, means no fix has arrived yet.
func (f *Formatter) Point(p *geo.Point) string {
	if p == nil || !utils.IsFinite(p.Lat()) || !utils.IsFinite(p.Lng()) {
		return f.gettingLocation()
	}
	return f.Latitude(p.Lat()) + coordinateSeparator + f.Longitude(p.Lng())
}

func (f *Formatter) gettingLocation() string {
	return f.printer.Sprintf(message.Key(keyGetting, "Getting location..."))
}

// Unavailable is the text shown when no position source exists.
func (f *Formatter) Unavailable() string {
	return f.printer.Sprintf(message.Key(keyUnavailable, "Cannot get location"))
}

var english = NewFormatter(language.English)

// FormatLatitude formats lat in English, e.g. 12°30'0" N.
func FormatLatitude(lat float64) string {
	return english.Latitude(lat)
}

// FormatLongitude formats lon in English, e.g. 5°15'0" W.
func FormatLongitude(lon float64) string {
	return english.Longitude(lon)
}
