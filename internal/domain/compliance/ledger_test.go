package compliance

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yukyu/internal/domain/leave"
)

func ledgerFixture() []leave.Employee {
	haken := "高雄工業"
	return []leave.Employee{
		{ID: "b", EmployeeNum: "E-002", Name: "佐藤", Year: 2025, Granted: 11, Used: 6, Balance: 5, UsageRate: 54.545, YukyuDates: []string{"2025-05-01", "2025-05-02"}},
		{ID: "a", EmployeeNum: "E-001", Name: "山田", Haken: &haken, Year: 2025, Granted: 10, Used: 2.5, Balance: 7.5, UsageRate: 25},
		{ID: "c", EmployeeNum: "E-001", Name: "田中", Year: 2025},
	}
}

func TestBuildLedgerOrdering(t *testing.T) {
	rows := BuildLedger(ledgerFixture())

	require.Len(t, rows, 3)
	assert.Equal(t, "山田", rows[0].Name)
	assert.Equal(t, "高雄工業", rows[0].Haken)
	assert.Equal(t, "田中", rows[1].Name)
	assert.Equal(t, "佐藤", rows[2].Name)
}

func TestWriteLedgerCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLedgerCSV(&buf, BuildLedger(ledgerFixture())))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, ledgerHeader, records[0])
	assert.Equal(t, []string{"E-001", "山田", "高雄工業", "2025", "10", "2.5", "7.5", "25.0", ""}, records[1])
	assert.Equal(t, "2025-05-01;2025-05-02", records[3][8])
	assert.Equal(t, "54.5", records[3][7])
}

func TestWriteLedgerPDF(t *testing.T) {
	var buf bytes.Buffer
	err := WriteLedgerPDF(&buf, BuildLedger(ledgerFixture()), "", time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWriteLedgerPDFMissingFont(t *testing.T) {
	var buf bytes.Buffer
	err := WriteLedgerPDF(&buf, nil, "/nonexistent/font.ttf", time.Now())

	assert.Error(t, err)
}
