package statements

import "github.com/tagus/canto-bench/pkg/wikidata"

// BirthYear returns a person's year of birth from their entity document
func BirthYear(doc *wikidata.Document, personID string) (int, bool) {
	value, ok := doc.PropertyString(personID, wikidata.PropDateOfBirth)
	if !ok {
		return 0, false
	}
	return YearOf(value)
}
