// Package export writes fetch results to local files: CSV for package
// records and related-content edges, raw or HTML-stripped text for
// document downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/openfederal/govinfo-client/pkg/govinfo"
)

// PackagesCSVHeader is the fixed column order of package record exports.
var PackagesCSVHeader = []string{
	"packageId", "title", "docClass", "congress", "dateIssued", "lastModified", "packageLink",
}

// EdgesCSVHeader is the fixed column order of related-content edge exports.
var EdgesCSVHeader = []string{"accessId", "relationship", "collection", "link"}

// WritePackagesCSV writes accumulated package records to a CSV file.
// Rows appear in slice order, which preserves page-fetch order.
func WritePackagesCSV(path string, records []govinfo.PackageRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(PackagesCSVHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.PackageID, r.Title, r.DocClass, r.Congress,
			r.DateIssued, r.LastModified, r.PackageLink,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write record %s: %w", r.PackageID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	log.Info().
		Str("path", path).
		Int("records", len(records)).
		Msg("Wrote package records CSV")

	return nil
}

// WriteEdgesCSV writes related-content edges to a CSV file.
func WriteEdgesCSV(path string, edges []govinfo.RelatedEdge) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(EdgesCSVHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, e := range edges {
		if err := w.Write([]string{e.AccessID, e.Relationship, e.Collection, e.Link}); err != nil {
			return fmt.Errorf("write edge %s: %w", e.AccessID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	log.Info().
		Str("path", path).
		Int("edges", len(edges)).
		Msg("Wrote related-content edges CSV")

	return nil
}
