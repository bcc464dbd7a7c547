package entities

import (
	"strings"
	"unicode/utf8"
)

// fuzzyLengthSlack is the maximum number of extra runes a catalog name may carry
// over the searched name and still count as a containment match.
const fuzzyLengthSlack = 5

// CatalogDocument is the release catalog page reduced to its table rows.
type CatalogDocument struct {
	Rows []CatalogRow
}

// CatalogRow is one configuration row of the release catalog table.
type CatalogRow struct {
	Name           string
	HistoryPath    string // link to the configuration page, relative to the portal
	HasVersionCell bool
	Version        VersionCell
	Dates          DateCell
}

// VersionCell holds the content of the "version" column.
type VersionCell struct {
	Links []VersionLink
	Text  string // full cell text, used when the cell has no links
}

// VersionLink is a single version entry of the version cell.
type VersionLink struct {
	Text   string
	Marker *SiblingMarker // element that directly follows the link, nil if none
}

// SiblingMarker describes the element following a version link, which is where
// the catalog flags long-term-support releases.
type SiblingMarker struct {
	Tag        string
	AbbrTitles []string
}

// DateCell holds the content of the column adjacent to the version cell.
type DateCell struct {
	Dates []string
	Text  string
}

// NormalizeName lowercases a configuration name, collapses whitespace runs into
// single spaces and trims the result.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Catalog indexes catalog rows by normalized name, keeping the page order.
type Catalog struct {
	keys []string
	rows map[string]CatalogRow
}

// NewCatalog builds the lookup index for a catalog document. When two rows share
// a normalized name the later row wins but keeps the position of the first.
func NewCatalog(document *CatalogDocument) *Catalog {
	catalog := &Catalog{rows: make(map[string]CatalogRow)}
	if document == nil {
		return catalog
	}
	for _, row := range document.Rows {
		key := NormalizeName(row.Name)
		if _, exists := catalog.rows[key]; !exists {
			catalog.keys = append(catalog.keys, key)
		}
		catalog.rows[key] = row
	}
	return catalog
}

// Len returns the number of distinct names in the catalog.
func (c *Catalog) Len() int { return len(c.keys) }

// Find resolves a user-supplied name. An exact normalized match always wins;
// otherwise the first catalog name (in page order) that contains the target and
// is fewer than five runes longer is returned.
func (c *Catalog) Find(target string) (CatalogRow, bool) {
	normalized := NormalizeName(target)
	if row, ok := c.rows[normalized]; ok {
		return row, true
	}

	targetLen := utf8.RuneCountInString(normalized)
	for _, key := range c.keys {
		if strings.Contains(key, normalized) &&
			utf8.RuneCountInString(key)-targetLen < fuzzyLengthSlack {
			return c.rows[key], true
		}
	}
	return CatalogRow{}, false
}
