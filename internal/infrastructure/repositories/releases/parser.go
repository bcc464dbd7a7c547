package releases

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/rios0rios0/releasewatch/internal/domain/entities"
)

const (
	catalogTableSelector = "#actualTable"
	historyTableSelector = "#versionsTable"
	nameCellSelector     = "td.nameColumn"
	versionCellSelector  = "td.versionColumn"
	allUpdatesSelector   = `a[href*="?allUpdates=true"]`
	executionSelector    = `input[name="execution"]`
	textNodeName         = "#text"
)

// parseCatalog reads the release catalog table. Rows without a name cell are
// not configuration rows and are skipped.
func parseCatalog(doc *goquery.Document) (*entities.CatalogDocument, error) {
	table := doc.Find(catalogTableSelector).First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: table %q not found", entities.ErrMalformedSource, catalogTableSelector)
	}

	document := &entities.CatalogDocument{}
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		nameCell := tr.Find(nameCellSelector).First()
		if nameCell.Length() == 0 {
			return
		}

		row := entities.CatalogRow{Name: strings.Join(strippedStrings(nameCell, ""), " ")}
		if href, ok := nameCell.Find("a").First().Attr("href"); ok {
			row.HistoryPath = href
		}

		if versionCell := tr.Find(versionCellSelector).First(); versionCell.Length() > 0 {
			row.HasVersionCell = true
			row.Version = readVersionCell(versionCell)
			if dateCell := versionCell.NextAllFiltered("td").First(); dateCell.Length() > 0 {
				dates := strippedStrings(dateCell, "")
				row.Dates = entities.DateCell{Dates: dates, Text: strings.Join(dates, "")}
			}
		}
		document.Rows = append(document.Rows, row)
	})
	return document, nil
}

func readVersionCell(cell *goquery.Selection) entities.VersionCell {
	versionCell := entities.VersionCell{Text: strings.Join(strippedStrings(cell, ""), "")}
	cell.Find("a").Each(func(_ int, a *goquery.Selection) {
		link := entities.VersionLink{Text: strings.Join(strippedStrings(a, ""), "")}
		if next := a.Next(); next.Length() > 0 {
			marker := &entities.SiblingMarker{Tag: goquery.NodeName(next)}
			next.Find("abbr").Each(func(_ int, abbr *goquery.Selection) {
				marker.AbbrTitles = append(marker.AbbrTitles, abbr.AttrOr("title", ""))
			})
			link.Marker = marker
		}
		versionCell.Links = append(versionCell.Links, link)
	})
	return versionCell
}

// parseHistory reads the upgrade-history table, dropping its header row.
func parseHistory(doc *goquery.Document) (*entities.HistoryDocument, error) {
	table := doc.Find(historyTableSelector).First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: table %q not found", entities.ErrMalformedSource, historyTableSelector)
	}

	document := &entities.HistoryDocument{}
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			return
		}
		var row entities.HistoryRow
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			// <small> carries the LTS marker, not part of the version text
			row.Cells = append(row.Cells, strings.Join(strippedStrings(td, "small"), ""))
		})
		tr.Find("small").Each(func(_ int, small *goquery.Selection) {
			row.SmallTexts = append(row.SmallTexts, strings.Join(strippedStrings(small, ""), ""))
		})
		document.Rows = append(document.Rows, row)
	})
	return document, nil
}

// findAllUpdatesHref returns the link that expands the history to every release.
func findAllUpdatesHref(doc *goquery.Document) string {
	return doc.Find(allUpdatesSelector).First().AttrOr("href", "")
}

// findExecutionToken returns the hidden login-flow token of the login form.
func findExecutionToken(doc *goquery.Document) (string, bool) {
	input := doc.Find(executionSelector).First()
	if input.Length() == 0 {
		return "", false
	}
	return input.AttrOr("value", ""), true
}

// strippedStrings returns the non-blank text nodes under s, each trimmed,
// ignoring the subtrees of elements matching skip (none when empty).
func strippedStrings(s *goquery.Selection, skip string) []string {
	var texts []string
	s.Contents().Each(func(_ int, child *goquery.Selection) {
		if goquery.NodeName(child) == textNodeName {
			if text := strings.TrimSpace(child.Text()); text != "" {
				texts = append(texts, text)
			}
			return
		}
		if skip != "" && child.Is(skip) {
			return
		}
		texts = append(texts, strippedStrings(child, skip)...)
	})
	return texts
}
