package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagsync/internal/domain/inventory"
)

func exportBag() inventory.Bag {
	return inventory.Bag{
		ID:             "B1",
		Name:           `Test "Gear"`,
		OwnerUserID:    7,
		AssignmentDate: "2024-03-01 09:30:00",
	}
}

func exportItem(status inventory.InspectionStatus) inventory.Item {
	return inventory.Item{
		ID:               1,
		Description:      "Rope, 60m",
		ModelName:        "Apex",
		Brand:            "Edelrid",
		SerialNumber:     "R-100",
		Condition:        "Good",
		InspectionStatus: status,
		InspectionDate:   "2024-02-15 10:00:00",
		ExpirationDate:   "2029-02-15 00:00:00",
		BagID:            "B1",
	}
}

// naiveSplit splits a rendered row the way a simple consumer would: on
// commas between quoted fields, undoing the doubling of embedded quotes.
func naiveSplit(row string) []string {
	parts := strings.Split(row, `","`)
	for i, p := range parts {
		p = strings.TrimPrefix(p, `"`)
		p = strings.TrimSuffix(p, `"`)
		parts[i] = strings.ReplaceAll(p, `""`, `"`)
	}
	return parts
}

func TestRenderCSVStructure(t *testing.T) {
	out := string(RenderCSV(exportBag(), []inventory.Item{exportItem(inventory.StatusPassed)}))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)

	assert.Equal(t, `"Bag ID","Bag Name","Owner User ID","Assignment Date"`, lines[0])
	assert.Contains(t, lines[1], `"Test ""Gear"""`)
	assert.Equal(t, "", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], `"Description"`))
	assert.Contains(t, lines[4], `"Rope, 60m"`)
}

func TestRenderCSVQuoteEscaping(t *testing.T) {
	out := string(RenderCSV(exportBag(), nil))
	lines := strings.Split(out, "\n")

	fields := naiveSplit(lines[1])
	require.Len(t, fields, 4)
	assert.Equal(t, `Test "Gear"`, fields[1])
}

func TestRenderCSVCommaInFieldStaysOneField(t *testing.T) {
	item := exportItem(inventory.StatusPassed)
	out := string(RenderCSV(exportBag(), []inventory.Item{item}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	fields := naiveSplit(lines[4])
	require.Len(t, fields, 11)
	assert.Equal(t, "Rope, 60m", fields[0])
}

func TestStatusLabels(t *testing.T) {
	tests := []struct {
		status inventory.InspectionStatus
		label  string
	}{
		{inventory.StatusFailed, "Failed"},
		{inventory.StatusPassed, "Passed"},
		{inventory.StatusNotApplicable, "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			out := string(RenderCSV(exportBag(), []inventory.Item{exportItem(tt.status)}))
			lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
			fields := naiveSplit(lines[4])
			assert.Equal(t, tt.label, fields[5])
		})
	}
}

func TestDateReformatting(t *testing.T) {
	out := string(RenderCSV(exportBag(), []inventory.Item{exportItem(inventory.StatusPassed)}))

	assert.Contains(t, out, `"03/01/2024"`)
	assert.Contains(t, out, `"02/15/2024"`)
}

func TestUnparseableDatePassesThrough(t *testing.T) {
	bag := exportBag()
	bag.AssignmentDate = "sometime next week"

	out := string(RenderCSV(bag, nil))
	assert.Contains(t, out, `"sometime next week"`)
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

	name := FileName(`Test "Gear"`, now, "csv")
	assert.Equal(t, "Test__Gear__20240301_093000.csv", name)

	assert.Equal(t, "bag_20240301_093000.csv", FileName("", now, "csv"))
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteCSV(dir, exportBag(), []inventory.Item{exportItem(inventory.StatusPassed)})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".csv"))
}

func TestRenderXLSX(t *testing.T) {
	data, err := RenderXLSX(exportBag(), []inventory.Item{exportItem(inventory.StatusFailed)})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	// XLSX files are zip archives.
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}
