package services

import (
	"testing"
)

func TestRenderPhrase(t *testing.T) {
	allergens := []PhraseAllergen{{ID: "a1", Name: "Peanut"}, {ID: "a2", Name: "Sesame"}}
	contacts := []PhraseContact{{ID: "c1", Name: "Mom", Phone: "555"}, {ID: "c2", Name: "Dad"}}

	tests := []struct {
		name      string
		text      string
		allergens []PhraseAllergen
		contacts  []PhraseContact
		want      string
	}{
		{name: "both tokens", text: "[allergens] / [emergency contact]", allergens: allergens, contacts: contacts, want: "Peanut, Sesame / Mom (555), Dad"},
		{name: "repeated token", text: "[allergens] and [allergens]", allergens: allergens[:1], want: "Peanut and Peanut"},
		{name: "nothing to substitute keeps tokens", text: "No [allergens] for [emergency contact]", want: "No [allergens] for [emergency contact]"},
		{name: "near miss tokens untouched", text: "[Allergens] [allergen] [emergency-contact]", allergens: allergens, contacts: contacts, want: "[Allergens] [allergen] [emergency-contact]"},
		{name: "blank names ignored", text: "[allergens]", allergens: []PhraseAllergen{{ID: "a3", Name: "  "}}, want: "[allergens]"},
		{name: "phone only contact", text: "Call [emergency contact]", contacts: []PhraseContact{{Phone: "911"}}, want: "Call 911"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if got := RenderPhrase(testCase.text, testCase.allergens, testCase.contacts); got != testCase.want {
				t.Fatalf("RenderPhrase(%q) = %q, want %q", testCase.text, got, testCase.want)
			}
		})
	}
}

func TestRenderTravelPhraseIsIdempotent(t *testing.T) {
	phrase := TravelPhraseView{
		Text:              "Allergic to [allergens], call [emergency contact]",
		Allergens:         []PhraseAllergen{{ID: "a1", Name: "[allergens]"}},
		EmergencyContacts: []PhraseContact{{ID: "c1", Name: "Mom", Phone: "555"}},
		Translations:      map[string]string{"es": "Alérgico a [allergens]"},
	}

	RenderTravelPhrase(&phrase)
	firstText := phrase.RenderedText
	firstSpanish := phrase.RenderedTranslations["es"]

	RenderTravelPhrase(&phrase)
	if phrase.RenderedText != firstText {
		t.Fatalf("second render changed text: %q != %q", phrase.RenderedText, firstText)
	}
	if phrase.RenderedTranslations["es"] != firstSpanish {
		t.Fatalf("second render changed translation: %q != %q", phrase.RenderedTranslations["es"], firstSpanish)
	}
	if firstText != "Allergic to [allergens], call Mom (555)" {
		t.Fatalf("unexpected rendered text %q", firstText)
	}
}
