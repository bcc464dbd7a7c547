//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"strings"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/releasewatch/internal/domain/entities"
)

// LTSAbbrTitle is the abbr title the portal puts on long-term-support releases.
const LTSAbbrTitle = "Длительная поддержка"

// CatalogRowBuilder helps create catalog rows as the HTML adapter produces them.
type CatalogRowBuilder struct {
	*testkit.BaseBuilder
	name           string
	historyPath    string
	hasVersionCell bool
	links          []entities.VersionLink
	dates          []string
	versionText    string
	dateText       string
}

// NewCatalogRowBuilder creates a builder for a row with an empty version cell.
func NewCatalogRowBuilder() *CatalogRowBuilder {
	return &CatalogRowBuilder{
		BaseBuilder:    testkit.NewBaseBuilder(),
		name:           "Бухгалтерия предприятия",
		historyPath:    "/project/Accounting30",
		hasVersionCell: true,
	}
}

// WithName sets the displayed configuration name.
func (b *CatalogRowBuilder) WithName(name string) *CatalogRowBuilder {
	b.name = name
	return b
}

// WithHistoryPath sets the link to the configuration's release page.
func (b *CatalogRowBuilder) WithHistoryPath(path string) *CatalogRowBuilder {
	b.historyPath = path
	return b
}

// WithRelease appends a non-LTS version link and its date.
func (b *CatalogRowBuilder) WithRelease(version, date string) *CatalogRowBuilder {
	b.links = append(b.links, entities.VersionLink{Text: version})
	b.dates = append(b.dates, date)
	return b
}

// WithLTSRelease appends a version link carrying the long-term-support marker.
func (b *CatalogRowBuilder) WithLTSRelease(version, date string) *CatalogRowBuilder {
	b.links = append(b.links, entities.VersionLink{
		Text:   version,
		Marker: &entities.SiblingMarker{Tag: "sup", AbbrTitles: []string{LTSAbbrTitle}},
	})
	b.dates = append(b.dates, date)
	return b
}

// WithPlainText sets a version cell without links, as for announced releases.
func (b *CatalogRowBuilder) WithPlainText(version, date string) *CatalogRowBuilder {
	b.links = nil
	b.dates = nil
	b.versionText = version
	b.dateText = date
	return b
}

// WithoutVersionCell drops the version column from the row.
func (b *CatalogRowBuilder) WithoutVersionCell() *CatalogRowBuilder {
	b.hasVersionCell = false
	return b
}

// Build creates the row (satisfies testkit.Builder interface).
func (b *CatalogRowBuilder) Build() interface{} {
	return b.BuildCatalogRow()
}

// BuildCatalogRow creates the row with a concrete return type.
func (b *CatalogRowBuilder) BuildCatalogRow() entities.CatalogRow {
	row := entities.CatalogRow{
		Name:           b.name,
		HistoryPath:    b.historyPath,
		HasVersionCell: b.hasVersionCell,
	}
	if !b.hasVersionCell {
		return row
	}

	versionText, dateText := b.versionText, b.dateText
	if len(b.links) > 0 {
		texts := make([]string, 0, len(b.links))
		for _, link := range b.links {
			texts = append(texts, link.Text)
		}
		versionText = strings.Join(texts, "")
		dateText = strings.Join(b.dates, "")
	}
	row.Version = entities.VersionCell{
		Links: append([]entities.VersionLink(nil), b.links...),
		Text:  versionText,
	}
	row.Dates = entities.DateCell{
		Dates: append([]string(nil), b.dates...),
		Text:  dateText,
	}
	return row
}

// Reset clears the builder state, allowing it to be reused.
func (b *CatalogRowBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "Бухгалтерия предприятия"
	b.historyPath = "/project/Accounting30"
	b.hasVersionCell = true
	b.links = nil
	b.dates = nil
	b.versionText = ""
	b.dateText = ""
	return b
}

// Clone creates a deep copy of the CatalogRowBuilder.
func (b *CatalogRowBuilder) Clone() testkit.Builder {
	return &CatalogRowBuilder{
		BaseBuilder:    b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:           b.name,
		historyPath:    b.historyPath,
		hasVersionCell: b.hasVersionCell,
		links:          append([]entities.VersionLink(nil), b.links...),
		dates:          append([]string(nil), b.dates...),
		versionText:    b.versionText,
		dateText:       b.dateText,
	}
}
