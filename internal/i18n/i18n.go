// Package i18n resolves the configured language index to a message printer.
// Display strings are registered under symbolic keys in messages_*.go.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// supportedTags is indexed by the language setting in the config file.
var supportedTags = []language.Tag{
	language.English,
}

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// Default returns the default language tag.
func Default() language.Tag {
	return language.English
}

// Tag maps a language index to its tag. Unknown indexes fall back to the
// default language.
func Tag(index int) language.Tag {
	if index < 0 || index >= len(supportedTags) {
		return Default()
	}
	return supportedTags[index]
}

// Printer returns a message printer for the language index.
func Printer(index int) *message.Printer {
	return message.NewPrinter(Tag(index))
}
