package diagfmt

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"taglist/internal/diag"
)

// English needs no catalog entries: a printer falls back to the key, which is
// the English template itself.
var supportedLangs = []language.Tag{language.English, language.Russian, language.German}

var langMatcher = language.NewMatcher(supportedLangs)

var translations = []struct {
	lang language.Tag
	code diag.Code
	msg  string
}{
	{language.Russian, diag.TagUnterminatedQuote, "Не найдена закрывающая кавычка."},
	{language.Russian, diag.TagUnexpectedTrailingText, `Неожиданный текст после "%s". Ожидалась запятая или конец текста. Найдено: %s.`},
	{language.Russian, diag.TagUnexpectedQuoteCharacter, `Неожиданная кавычка после "%s".`},
	{language.Russian, diag.TagTooManyTags, "Слишком много тегов, сохранены только первые %d."},
	{language.Russian, diag.TagInputTooLarge, "Ввод больше %d байт и не был разобран."},

	{language.German, diag.TagUnterminatedQuote, "Kein schließendes Anführungszeichen gefunden."},
	{language.German, diag.TagUnexpectedTrailingText, `Unerwarteter Text nach "%s". Komma oder Textende erwartet. Gefunden: %s.`},
	{language.German, diag.TagUnexpectedQuoteCharacter, `Unerwartetes Anführungszeichen nach "%s".`},
	{language.German, diag.TagTooManyTags, "Zu viele Tags, nur die ersten %d wurden übernommen."},
	{language.German, diag.TagInputTooLarge, "Die Eingabe ist größer als %d Bytes und wurde nicht verarbeitet."},
}

func init() {
	for _, tr := range translations {
		if err := message.SetString(tr.lang, tr.code.Template(), tr.msg); err != nil {
			panic(fmt.Errorf("register %s message for %s: %w", tr.lang, tr.code.ID(), err))
		}
	}
}

// ParseLang resolves a language name ("ru", "de-AT", "en") to the closest
// supported language. Unsupported but well-formed names resolve to English.
func ParseLang(s string) (language.Tag, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return language.English, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid language %q: %w", s, err)
	}
	_, idx, _ := langMatcher.Match(tag)
	return supportedLangs[idx], nil
}

// Localize renders the message of d in lang from its structured payload.
// Diagnostics without a template keep their own message.
func Localize(d diag.Diagnostic, lang language.Tag) string {
	tmpl := d.Code.Template()
	if tmpl == "" {
		return d.Message
	}
	if lang == language.Und {
		lang = language.English
	}
	return message.NewPrinter(lang).Sprintf(tmpl, d.Args()...)
}
