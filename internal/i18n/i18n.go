package i18n

import (
	"embed"
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	mu         sync.RWMutex
	translator *i18n.Localizer
	active     = language.English
)

// Init builds a localizer for the given locale and makes it the package default.
// An empty locale falls back to the LANG environment variable, then English.
func Init(locale string) (*i18n.Localizer, error) {
	tag := resolveTag(locale)

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+entry.Name()); err != nil {
			return nil, err
		}
	}

	loc := i18n.NewLocalizer(bundle, tag.String(), language.English.String())

	mu.Lock()
	translator = loc
	active = tag
	mu.Unlock()
	return loc, nil
}

// Language returns the tag selected by the last Init call.
func Language() language.Tag {
	mu.RLock()
	defer mu.RUnlock()
	return active
}

// T returns the localized message for messageID, or messageID itself when
// no translation exists.
func T(messageID string) string {
	mu.RLock()
	loc := translator
	mu.RUnlock()

	if loc == nil {
		var err error
		if loc, err = Init(""); err != nil {
			return messageID
		}
	}

	msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: messageID})
	if err != nil || msg == "" {
		return messageID
	}
	return msg
}

func resolveTag(locale string) language.Tag {
	if locale == "" {
		locale = localeFromEnv()
	}
	if locale == "" {
		return language.English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	return tag
}

// localeFromEnv turns POSIX values such as "pt_BR.UTF-8" into "pt-BR".
func localeFromEnv() string {
	for _, key := range []string{"LC_ALL", "LANG"} {
		v := os.Getenv(key)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		return strings.ReplaceAll(v, "_", "-")
	}
	return ""
}
