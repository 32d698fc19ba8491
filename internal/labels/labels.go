// Package labels resolves localized storefront messages from YAML bundles.
//
// Bundles are named messages_<locale>.yaml and hold a flat key to message
// map. Messages may contain {0}-style placeholders. Embedded bundles are
// always loaded; files in an override directory replace individual keys.
package labels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed bundles/*.yaml
var bundleFS embed.FS

const (
	bundleDir    = "bundles"
	bundlePrefix = "messages_"
	bundleSuffix = ".yaml"
)

// DefaultLocale is used when no bundle matches the requested locale.
var DefaultLocale = language.English

// ErrLabelNotFound is returned when a key is mapped in neither the requested
// locale nor the default locale.
var ErrLabelNotFound = errors.New("label not found")

// Bundle holds every loaded locale.
type Bundle struct {
	messages map[language.Tag]map[string]string
	tags     []language.Tag
	matcher  language.Matcher
}

// Load reads the embedded bundles, then applies overrides from dir when set.
func Load(dir string) (*Bundle, error) {
	sub, err := fs.Sub(bundleFS, bundleDir)
	if err != nil {
		return nil, fmt.Errorf("open embedded bundles: %w", err)
	}

	b := &Bundle{messages: make(map[language.Tag]map[string]string)}
	if err := b.readDir(sub); err != nil {
		return nil, err
	}
	if dir != "" {
		if err := b.readDir(os.DirFS(dir)); err != nil {
			return nil, err
		}
	}
	if _, ok := b.messages[DefaultLocale]; !ok {
		return nil, fmt.Errorf("missing bundle for default locale %s", DefaultLocale)
	}

	b.tags = make([]language.Tag, 0, len(b.messages))
	b.tags = append(b.tags, DefaultLocale)
	for tag := range b.messages {
		if tag != DefaultLocale {
			b.tags = append(b.tags, tag)
		}
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

func (b *Bundle) readDir(fsys fs.FS) error {
	files, err := fs.Glob(fsys, bundlePrefix+"*"+bundleSuffix)
	if err != nil {
		return fmt.Errorf("list bundles: %w", err)
	}
	for _, name := range files {
		locale := strings.TrimSuffix(strings.TrimPrefix(path.Base(name), bundlePrefix), bundleSuffix)
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("bundle %s: invalid locale: %w", name, err)
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read bundle %s: %w", name, err)
		}
		var entries map[string]string
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("parsing %s: %w", name, err)
		}

		messages, ok := b.messages[tag]
		if !ok {
			messages = make(map[string]string, len(entries))
			b.messages[tag] = messages
		}
		for key, msg := range entries {
			messages[key] = msg
		}
	}
	return nil
}

// Match picks the best available locale for an Accept-Language header,
// falling back to the given language code and then to DefaultLocale.
func (b *Bundle) Match(acceptLanguage string, fallback string) language.Tag {
	var preferred []language.Tag
	if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
		preferred = append(preferred, tags...)
	}
	if tag, err := language.Parse(fallback); err == nil {
		preferred = append(preferred, tag)
	}
	if len(preferred) == 0 {
		return DefaultLocale
	}
	_, index, confidence := b.matcher.Match(preferred...)
	if confidence == language.No {
		return DefaultLocale
	}
	return b.tags[index]
}

// Message resolves key for locale and substitutes args. The default locale
// is consulted when the matched locale lacks the key.
func (b *Bundle) Message(key string, locale language.Tag, args ...string) (string, error) {
	_, index, _ := b.matcher.Match(locale)
	if msg, ok := b.messages[b.tags[index]][key]; ok {
		return format(msg, args), nil
	}
	if msg, ok := b.messages[DefaultLocale][key]; ok {
		return format(msg, args), nil
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrLabelNotFound, key, locale)
}

// MessageOrDefault is Message with a fallback for unmapped keys.
func (b *Bundle) MessageOrDefault(key string, locale language.Tag, def string, args ...string) string {
	msg, err := b.Message(key, locale, args...)
	if err != nil {
		return def
	}
	return msg
}

// Locales returns the loaded locales, default first.
func (b *Bundle) Locales() []language.Tag {
	out := make([]language.Tag, len(b.tags))
	copy(out, b.tags)
	return out
}

func format(msg string, args []string) string {
	if len(args) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(args)*2)
	for i, arg := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", arg)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
