package extract

import "strings"

type category struct {
	tag   string
	terms []string
}

// categories are checked in order; the first matching term tags the document.
var categories = []category{
	{"rechnung", []string{"rechnung", "invoice", "rechnungsnummer", "rechnungsbetrag", "zahlbar"}},
	{"vertrag", []string{"vertrag", "vereinbarung", "contract", "laufzeit", "kündigung"}},
	{"steuer", []string{"steuer", "finanzamt", "steuernummer", "steuererklärung", "einkommensteuer", "tax"}},
	{"versicherung", []string{"versicherung", "police", "versicherungsnummer", "beitrag", "prämie", "insurance"}},
	{"bank", []string{"bank", "konto", "kontoauszug", "überweisung", "iban", "bic"}},
	{"gehalt", []string{"gehalt", "lohn", "gehaltsabrechnung", "brutto", "netto", "lohnabrechnung", "payslip", "salary"}},
	{"arzt", []string{"arzt", "patient", "diagnose", "rezept", "krankenhaus", "praxis"}},
	{"handwerker", []string{"handwerker", "reparatur", "montage", "material", "arbeitslohn"}},
	{"energie", []string{"strom", "gas", "energie", "verbrauch", "zählerstand", "kwh"}},
	{"telefon", []string{"telefon", "mobilfunk", "internet", "tarif", "anschluss"}},
}

// DetectKeywords returns the category tags whose terms occur in text.
// Matching is a case-insensitive substring search, so "Stromrechnung" tags
// both energie and rechnung.
func DetectKeywords(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, c := range categories {
		for _, term := range c.terms {
			if strings.Contains(lower, term) {
				found = append(found, c.tag)
				break
			}
		}
	}
	return found
}

// Categories returns the known category tags in detection order.
func Categories() []string {
	tags := make([]string, len(categories))
	for i, c := range categories {
		tags[i] = c.tag
	}
	return tags
}
