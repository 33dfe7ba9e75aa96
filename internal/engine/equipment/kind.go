// Package equipment assembles the procedural pool equipment models and
// decides where they go around a basin.
package equipment

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Kind identifies an equipment model.
type Kind int

const (
	Filter Kind = iota
	Heater
	Ladder
	Light
	Skimmer
)

// Kinds lists every kind.
var Kinds = []Kind{Filter, Heater, Ladder, Light, Skimmer}

// String returns the identifier of the kind.
func (k Kind) String() string {
	switch k {
	case Filter:
		return "filter"
	case Heater:
		return "heater"
	case Ladder:
		return "ladder"
	case Light:
		return "light"
	case Skimmer:
		return "skimmer"
	default:
		return "unknown"
	}
}

// ParseKind maps an identifier to a Kind.
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range Kinds {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// English display names double as catalogue keys.
var names = map[Kind]string{
	Filter:  "Filtration unit",
	Heater:  "Heater",
	Ladder:  "Ladder",
	Light:   "Underwater light",
	Skimmer: "Skimmer",
}

var labels = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	ru := map[Kind]string{
		Filter:  "Фильтровальная установка",
		Heater:  "Нагреватель",
		Ladder:  "Лестница",
		Light:   "Прожектор",
		Skimmer: "Скиммер",
	}
	for k, key := range names {
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.Russian, key, ru[k])
	}
	return b
}

// Languages returns the languages labels are available in, ordered by tag.
func Languages() []language.Tag {
	tags := labels.Languages()
	sort.Slice(tags, func(i, j int) bool { return tags[i].String() < tags[j].String() })
	return tags
}

// NextLanguage returns the label language after lang in Languages,
// wrapping around. A language without labels moves to the first one.
func NextLanguage(lang language.Tag) language.Tag {
	tags := Languages()
	base, _ := lang.Base()
	for i, t := range tags {
		if b, _ := t.Base(); b == base {
			return tags[(i+1)%len(tags)]
		}
	}
	return tags[0]
}

// Label returns the human-readable name of the kind in the language closest
// to lang, falling back to English.
func Label(k Kind, lang language.Tag) string {
	key, ok := names[k]
	if !ok {
		return k.String()
	}
	return message.NewPrinter(lang, message.Catalog(labels)).Sprintf(key)
}

// ParseLanguage parses a BCP 47 tag, returning English when it is invalid.
func ParseLanguage(s string) language.Tag {
	tag, err := language.Parse(s)
	if err != nil {
		return language.English
	}
	return tag
}
