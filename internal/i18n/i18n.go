package i18n

import (
	"embed"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/Xuanwo/go-locale"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

var (
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	once      sync.Once
	mu        sync.RWMutex
)

// Init initializes the i18n module with the system locale. It is safe to
// call more than once.
func Init() {
	once.Do(func() {
		bundle = i18n.NewBundle(language.English)
		bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

		// Load embedded translation files
		bundle.LoadMessageFileFS(localeFS, "locales/en.toml")
		bundle.LoadMessageFileFS(localeFS, "locales/zh.toml")

		localizer = i18n.NewLocalizer(bundle, detect()...)
	})
}

// SetLanguage switches message lookups to lang. An empty lang restores the
// detected system locale.
func SetLanguage(lang string) {
	Init()
	langs := detect()
	if lang != "" {
		langs = []string{lang}
	}
	mu.Lock()
	localizer = i18n.NewLocalizer(bundle, langs...)
	mu.Unlock()
}

// detect returns the system locale using POSIX order:
// LANGUAGE > LC_ALL > LC_MESSAGES > LANG
func detect() []string {
	if tag, err := locale.Detect(); err == nil {
		return []string{tag.String()}
	}
	return nil
}

// T returns the translated string for the given message ID.
func T(messageID string) string {
	return Tf(messageID, nil)
}

// Tf returns the translated string with template data substitution.
func Tf(messageID string, data map[string]interface{}) string {
	Init() // Ensure initialized
	mu.RLock()
	l := localizer
	mu.RUnlock()

	msg, err := l.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID // Fallback to message ID
	}
	return msg
}
