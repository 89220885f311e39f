// Package export writes enrichment results to spreadsheets.
package export

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/prospect-cli/internal/model"
)

// Sheet names in the exported workbook.
const (
	SyndicsSheet  = "Syndics"
	ContactsSheet = "Contacts"
)

var (
	syndicHeader = []string{
		"siret", "name", "domain", "domain_source", "confidence_score",
		"org_id", "contact_count", "enriched_at",
	}
	contactHeader = []string{
		"siret", "first_name", "last_name", "title", "email", "linkedin_url", "photo_url",
	}
)

// WriteXLSX writes results to path: one row per syndic on the Syndics sheet
// and one row per contact on the Contacts sheet.
func WriteXLSX(path string, results []model.EnrichmentResult) error {
	f := xlsx.NewFile()

	syndics, err := f.AddSheet(SyndicsSheet)
	if err != nil {
		return eris.Wrap(err, "export: add syndics sheet")
	}
	contacts, err := f.AddSheet(ContactsSheet)
	if err != nil {
		return eris.Wrap(err, "export: add contacts sheet")
	}

	addStringRow(syndics, syndicHeader...)
	addStringRow(contacts, contactHeader...)

	for _, r := range results {
		row := syndics.AddRow()
		row.AddCell().SetString(r.StableID)
		row.AddCell().SetString(r.DisplayName)
		row.AddCell().SetString(r.Domain)
		row.AddCell().SetString(string(r.DomainSource))
		row.AddCell().SetFloat(r.ConfidenceScore)
		row.AddCell().SetString(r.OrgID)
		row.AddCell().SetInt(len(r.Contacts))
		row.AddCell().SetString(r.EnrichedAt.UTC().Format(time.RFC3339))

		for _, c := range r.Contacts {
			addStringRow(contacts, r.StableID, c.FirstName, c.LastName, c.Title, c.Email, c.LinkedInURL, c.PhotoURL)
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}

func addStringRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}
