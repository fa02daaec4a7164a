package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/vango-dev/eventconnect/pkg/form"
)

var _ form.Translator = (*Translator)(nil)

func TestNew(t *testing.T) {
	t.Run("english catalog", func(t *testing.T) {
		tr, err := New("en", nil)
		require.NoError(t, err)
		assert.Equal(t, "Photo is required", tr.Translate("photo_required", "fallback"))
		assert.Equal(t, language.English, tr.Language())
	})

	t.Run("spanish catalog", func(t *testing.T) {
		tr, err := New("es", nil)
		require.NoError(t, err)
		assert.Equal(t, "La foto es obligatoria", tr.Translate("photo_required", "fallback"))
	})

	t.Run("regional tag matches base language", func(t *testing.T) {
		tr, err := New("es-MX", nil)
		require.NoError(t, err)
		assert.Equal(t, "La ciudad es obligatoria", tr.Translate("city_required", "fallback"))
	})

	t.Run("unsupported language", func(t *testing.T) {
		_, err := New("fr", nil)
		assert.Error(t, err)
	})

	t.Run("malformed tag", func(t *testing.T) {
		_, err := New("not a tag!", nil)
		assert.Error(t, err)
	})
}

func TestTranslateFallback(t *testing.T) {
	tr, err := New("es", nil)
	require.NoError(t, err)

	if got := tr.Translate("no_such_message", "Default text"); got != "Default text" {
		t.Errorf("Expected fallback text, got %q", got)
	}
}

func TestSetLanguage(t *testing.T) {
	tr, err := New("en", nil)
	require.NoError(t, err)

	require.NoError(t, tr.SetLanguage("es"))
	assert.Equal(t, "El país es obligatorio", tr.Translate("country_required", ""))

	require.Error(t, tr.SetLanguage("de"))
	assert.Equal(t, "El país es obligatorio", tr.Translate("country_required", ""), "failed switch keeps the language")
}

func TestPlural(t *testing.T) {
	tr, err := New("en", nil)
	require.NoError(t, err)

	assert.Equal(t, "Booking 1 service...", tr.Plural("services_booking", 1, ""))
	assert.Equal(t, "Booking 3 services...", tr.Plural("services_booking", 3, ""))
	assert.Equal(t, "fallback", tr.Plural("missing", 2, "fallback"))
}

func TestLanguages(t *testing.T) {
	tr, err := New("en", nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []language.Tag{language.English, language.Spanish}, tr.Languages())
}

func TestEnglishMatchesRuleDefaults(t *testing.T) {
	tr, err := New("en", nil)
	require.NoError(t, err)

	ids := map[string]string{
		"event_or_new_event_required": "Please select an event or create a new one",
		"event_title_required":        "Event title is required",
		"category_required":           "At least one category is required",
	}
	for id, want := range ids {
		assert.Equal(t, want, tr.Translate(id, ""), id)
	}
}
