// Package export renders a bag and its items into shareable tabular
// artifacts. Rendering is a pure transform: no network, no concurrency.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"bagsync/internal/domain/inventory"
)

// wireTimeLayout is the timestamp form dates arrive in from the backend.
// displayDateLayout is the month/day/year form used in exports.
const (
	wireTimeLayout    = "2006-01-02 15:04:05"
	displayDateLayout = "01/02/2006"
)

var bagHeader = []string{"Bag ID", "Bag Name", "Owner User ID", "Assignment Date"}

var itemHeader = []string{
	"Description", "Model", "Brand", "Serial Number", "Condition",
	"Inspection Status", "Inspection Date", "Follow-Up Inspection Date",
	"Expiration Date", "Comment", "Image URL",
}

// RenderCSV produces two stacked sections: one row describing the bag, then
// a header row and one row per item. Every field is double-quoted with
// embedded quotes doubled, so the output survives naive CSV splitters.
func RenderCSV(bag inventory.Bag, items []inventory.Item) []byte {
	var buf bytes.Buffer

	writeRow(&buf, bagHeader)
	writeRow(&buf, bagRow(bag))
	buf.WriteString("\n")
	writeRow(&buf, itemHeader)
	for _, it := range items {
		writeRow(&buf, itemRow(it))
	}

	return buf.Bytes()
}

// FileName builds the export artifact name: {sanitizedBagName}_{timestamp}
// plus the format extension.
func FileName(bagName string, now time.Time, ext string) string {
	return fmt.Sprintf("%s_%s.%s", sanitize(bagName), now.Format("20060102_150405"), ext)
}

// WriteCSV renders the bag into a CSV file under dir and returns its path.
func WriteCSV(dir string, bag inventory.Bag, items []inventory.Item) (string, error) {
	path := filepath.Join(dir, FileName(bag.Name, time.Now(), "csv"))
	if err := os.WriteFile(path, RenderCSV(bag, items), 0o644); err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}
	return path, nil
}

func bagRow(bag inventory.Bag) []string {
	return []string{
		bag.ID,
		bag.Name,
		strconv.Itoa(bag.OwnerUserID),
		formatDate(bag.AssignmentDate),
	}
}

func itemRow(it inventory.Item) []string {
	return []string{
		it.Description,
		it.ModelName,
		it.Brand,
		it.SerialNumber,
		it.Condition,
		it.InspectionStatus.Label(),
		formatDate(it.InspectionDate),
		formatDate(it.FollowUpInspectionDate),
		formatDate(it.ExpirationDate),
		it.Comment,
		it.ImageURL,
	}
}

func writeRow(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString(escape(field))
	}
	buf.WriteString("\n")
}

// escape wraps the field in double quotes, doubling embedded quotes.
func escape(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// formatDate reformats a wire timestamp into the display form. A value that
// does not parse against the wire layout passes through unchanged.
func formatDate(s string) string {
	if s == "" {
		return ""
	}
	ts, err := time.Parse(wireTimeLayout, s)
	if err != nil {
		return s
	}
	return ts.Format(displayDateLayout)
}

// sanitize keeps the bag name filesystem-safe.
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "bag"
	}
	return b.String()
}
