package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fieldsOf(s *Schema, set map[string]Value) map[string]Value {
	fields := initialState(s).Fields
	for k, v := range set {
		fields[k] = v
	}
	return fields
}

func TestValidateEmptyPostDialog(t *testing.T) {
	s := loadTestRules(t).MustGet("post-hashtags")

	errs, ok := Validate(s, "select-event", fieldsOf(s, nil), nil)
	if ok {
		t.Fatal("empty dialog should be invalid")
	}
	want := Errors{
		"photo":           "Photo is required",
		"caption":         "Caption is required",
		"eventOrHashtags": "Please select an event or enter three hashtags",
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateCaptionIsTrimmed(t *testing.T) {
	s := loadTestRules(t).MustGet("post-hashtags")

	errs, _ := Validate(s, "select-event", fieldsOf(s, map[string]Value{
		"caption": Text("   \n\t"),
	}), nil)
	if errs["caption"] != "Caption is required" {
		t.Errorf("whitespace caption should be rejected, got %q", errs["caption"])
	}
}

func TestValidateHashtagGroup(t *testing.T) {
	s := loadTestRules(t).MustGet("post-hashtags")
	base := map[string]Value{
		"photo":   Text("data:image/png;base64,AAAA"),
		"caption": Text("Hello"),
	}

	tests := []struct {
		name     string
		hashtags Value
		wantErr  string
	}{
		{"none", Items("", "", ""), "All three hashtags are required"},
		{"two of three", Items("go", "", "events"), "All three hashtags are required"},
		{"blank slot", Items("go", "  ", "events"), "All three hashtags are required"},
		{"three of three", Items("go", "tech", "events"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := map[string]Value{"hashtags": tt.hashtags}
			for k, v := range base {
				set[k] = v
			}
			errs, ok := Validate(s, "hashtags", fieldsOf(s, set), nil)
			if errs["eventOrHashtags"] != tt.wantErr {
				t.Errorf("eventOrHashtags = %q, want %q", errs["eventOrHashtags"], tt.wantErr)
			}
			if ok != (tt.wantErr == "") {
				t.Errorf("ok = %v", ok)
			}
			if len(errs.Failed()) > 1 {
				t.Errorf("expected a single composite error, got %v", errs.Failed())
			}
		})
	}
}

func TestValidateOnlyActiveModeGroup(t *testing.T) {
	s := loadTestRules(t).MustGet("post-hashtags")
	fields := fieldsOf(s, map[string]Value{
		"photo":   Text("data:image/png;base64,AAAA"),
		"caption": Text("Hello"),
		"event":   Text("2"),
	})

	if _, ok := Validate(s, "select-event", fields, nil); !ok {
		t.Error("selected event should satisfy select-event mode")
	}
	if _, ok := Validate(s, "hashtags", fields, nil); ok {
		t.Error("selected event must not satisfy hashtags mode")
	}
}

func TestValidatePerFieldModeErrors(t *testing.T) {
	s := loadTestRules(t).MustGet("post-new-event")

	errs, ok := Validate(s, "create-event", fieldsOf(s, map[string]Value{
		"photo":   Text("data:image/png;base64,AAAA"),
		"caption": Text("Hello"),
		"title":   Text("Demo"),
	}), nil)
	if ok {
		t.Fatal("missing date should be invalid")
	}
	want := Errors{
		"photo":           "",
		"caption":         "",
		"eventOrNewEvent": "",
		"title":           "",
		"date":            "Event date is required",
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateDependentSelector(t *testing.T) {
	s := loadTestRules(t).MustGet("create-event")
	base := map[string]Value{
		"photo":      Text("data:image/jpeg;base64,AAAA"),
		"title":      Text("Go Meetup"),
		"categories": Items("Technology"),
	}

	t.Run("no country flags only country", func(t *testing.T) {
		errs, _ := Validate(s, "", fieldsOf(s, base), nil)
		if errs["country"] != "Country is required" {
			t.Errorf("country = %q", errs["country"])
		}
		if errs["city"] != "" {
			t.Errorf("city should not be flagged without a country, got %q", errs["city"])
		}
	})

	t.Run("country without city", func(t *testing.T) {
		set := map[string]Value{"country": Text("Japan")}
		for k, v := range base {
			set[k] = v
		}
		errs, ok := Validate(s, "", fieldsOf(s, set), nil)
		if ok || errs["city"] != "City is required" || errs["country"] != "" {
			t.Errorf("errs = %v", errs)
		}
	})

	t.Run("complete", func(t *testing.T) {
		set := map[string]Value{"country": Text("Japan"), "city": Text("Osaka")}
		for k, v := range base {
			set[k] = v
		}
		if errs, ok := Validate(s, "", fieldsOf(s, set), nil); !ok {
			t.Errorf("expected valid, got %v", errs)
		}
	})
}

func TestValidateEmptyMultiSelection(t *testing.T) {
	s := loadTestRules(t).MustGet("create-event")
	errs, _ := Validate(s, "", fieldsOf(s, nil), nil)
	if errs["categories"] != "At least one category is required" {
		t.Errorf("categories = %q", errs["categories"])
	}
}

func TestValidateTranslatesMessages(t *testing.T) {
	s := loadTestRules(t).MustGet("post-hashtags")
	tr := TranslatorFunc(func(id, fallback string) string {
		if id == "photo_required" {
			return "La foto es obligatoria"
		}
		return fallback
	})

	errs, _ := Validate(s, "select-event", fieldsOf(s, nil), tr)
	if errs["photo"] != "La foto es obligatoria" {
		t.Errorf("photo = %q", errs["photo"])
	}
	if errs["caption"] != "Caption is required" {
		t.Errorf("untranslated ids should fall back, got %q", errs["caption"])
	}
}

func TestValidateIsPure(t *testing.T) {
	s := loadTestRules(t).MustGet("post-hashtags")
	fields := fieldsOf(s, map[string]Value{"caption": Text("Hi")})

	first, _ := Validate(s, "select-event", fields, nil)
	second, _ := Validate(s, "select-event", fields, nil)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated validation differs:\n%s", diff)
	}
	if fields["caption"].String() != "Hi" {
		t.Error("Validate modified its input")
	}
}

func TestRequiredValidator(t *testing.T) {
	text := &FieldSpec{Name: "t", Kind: KindText}
	tuple := &FieldSpec{Name: "h", Kind: KindTuple, Size: 2}

	if err := Required(text, "").Validate(Text(" ")); err == nil || err.Error() != "This field is required" {
		t.Errorf("blank text err = %v", err)
	}
	if err := Required(text, "x").Validate(Text("ok")); err != nil {
		t.Errorf("filled text err = %v", err)
	}
	if err := Required(tuple, "x").Validate(Items("a")); err == nil {
		t.Error("short tuple should fail")
	}
	if err := Required(tuple, "x").Validate(Items("a", "b")); err != nil {
		t.Errorf("full tuple err = %v", err)
	}

	var verr ValidationError
	err := Required(text, "needed").Validate(Text(""))
	if e, ok := err.(ValidationError); ok {
		verr = e
	}
	if verr.Field != "t" || verr.Message != "needed" {
		t.Errorf("ValidationError = %+v", verr)
	}
}

func TestCustomValidator(t *testing.T) {
	v := Custom(func(value Value) error {
		if value.String() == "bad" {
			return ValidationError{Message: "nope"}
		}
		return nil
	})
	if v.Validate(Text("bad")) == nil {
		t.Error("expected error")
	}
	if v.Validate(Text("good")) != nil {
		t.Error("unexpected error")
	}
}
