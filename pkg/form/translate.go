package form

// Translator resolves message ids to display text.
type Translator interface {
	// Translate returns the text for id, or fallback when id is unknown.
	Translate(id, fallback string) string
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(id, fallback string) string

func (f TranslatorFunc) Translate(id, fallback string) string {
	return f(id, fallback)
}

// Untranslated returns every message's default text.
var Untranslated Translator = TranslatorFunc(func(_, fallback string) string {
	return fallback
})

func (m Message) text(tr Translator) string {
	if tr == nil || m.ID == "" {
		return m.Default
	}
	return tr.Translate(m.ID, m.Default)
}
