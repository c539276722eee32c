package services

import (
	"strings"

	"github.com/SageDevelopmentCode/dine-web/internal/models"
)

// RenderPhrase replaces the [allergens] and [emergency contact] tokens in text
// in a single pass. A token with nothing to put in its place stays as written.
func RenderPhrase(text string, allergens []PhraseAllergen, contacts []PhraseContact) string {
	pairs := make([]string, 0, 4)
	if names := allergenNames(allergens); names != "" {
		pairs = append(pairs, models.PlaceholderAllergens, names)
	}
	if labels := contactLabels(contacts); labels != "" {
		pairs = append(pairs, models.PlaceholderEmergencyContact, labels)
	}
	if len(pairs) == 0 {
		return text
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// RenderTravelPhrase sets RenderedText and RenderedTranslations from the
// phrase's stored text, so calling it again gives the same result.
func RenderTravelPhrase(phrase *TravelPhraseView) {
	phrase.RenderedText = RenderPhrase(phrase.Text, phrase.Allergens, phrase.EmergencyContacts)
	phrase.RenderedTranslations = make(map[string]string, len(phrase.Translations))
	for code, text := range phrase.Translations {
		phrase.RenderedTranslations[code] = RenderPhrase(text, phrase.Allergens, phrase.EmergencyContacts)
	}
}

func allergenNames(allergens []PhraseAllergen) string {
	names := make([]string, 0, len(allergens))
	for _, allergen := range allergens {
		if name := strings.TrimSpace(allergen.Name); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

func contactLabels(contacts []PhraseContact) string {
	labels := make([]string, 0, len(contacts))
	for _, contact := range contacts {
		name := strings.TrimSpace(contact.Name)
		phone := strings.TrimSpace(contact.Phone)
		switch {
		case name != "" && phone != "":
			labels = append(labels, name+" ("+phone+")")
		case name != "":
			labels = append(labels, name)
		case phone != "":
			labels = append(labels, phone)
		}
	}
	return strings.Join(labels, ", ")
}
