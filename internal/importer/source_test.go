// AngelaMos | 2026
// source_test.go

package importer

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/carterperez-dev/dojo-console/internal/calendar"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    [][]string
	}{
		{
			name:    "empty input",
			content: "",
			want:    nil,
		},
		{
			name:    "trailing row without newline",
			content: "a,b\nc,d",
			want:    [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:    "final newline adds no row",
			content: "a,b\n",
			want:    [][]string{{"a", "b"}},
		},
		{
			name:    "crlf line endings",
			content: "a,b\r\nc,d\r\n",
			want:    [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:    "quoted comma",
			content: `"Kim, Minji",010`,
			want:    [][]string{{"Kim, Minji", "010"}},
		},
		{
			name:    "doubled quote inside quotes",
			content: `"say ""osu""",x`,
			want:    [][]string{{`say "osu"`, "x"}},
		},
		{
			name:    "newline inside quotes",
			content: "\"line1\nline2\",x\n",
			want:    [][]string{{"line1\nline2", "x"}},
		},
		{
			name:    "blank line is an empty row",
			content: "a\n\nb",
			want:    [][]string{{"a"}, {""}, {"b"}},
		},
		{
			name:    "trailing empty field",
			content: "a,",
			want:    [][]string{{"a", ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCSV(tt.content))
		})
	}
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatXLSX, DetectFormat("members.XLSX", ""))
	assert.Equal(t, FormatCSV, DetectFormat("members.csv", xlsxContentType))
	assert.Equal(t, FormatXLSX, DetectFormat("upload", xlsxContentType))
	assert.Equal(t, FormatCSV, DetectFormat("upload", "text/csv"))
}

func TestReadRowsRejectsEmptyBody(t *testing.T) {
	for _, body := range []string{"", "   ", "\n\r\n"} {
		_, err := ReadRows(FormatCSV, []byte(body))
		assert.ErrorIs(t, err, ErrEmptyFile)
	}
}

func TestReadRowsXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"이름", "전화번호", "성별", "만료일"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"홍길동", "010-1111-2222", "남", "2024-12-31"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	rows, err := ReadRows(FormatXLSX, buf.Bytes())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"이름", "전화번호", "성별", "만료일"}, rows[0])
	assert.Equal(t, "010-1111-2222", rows[1][1])
}

func TestReadXLSXRejectsGarbage(t *testing.T) {
	_, err := ReadXLSX(bytes.NewReader([]byte("name,phone\n")))
	assert.ErrorIs(t, err, ErrUnreadable)
	assert.True(t, IsRejection(err))
}

func TestReadRowsXLSXDateCells(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"이름", "전화번호", "성별", "시작일", "만료일", "메모"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{
		"홍길동", "010-1234-5678", "남", 45352, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), 12345,
	}))

	dotted := "yyyy.mm.dd"
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dotted})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "D2", "D2", style))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	rows, err := ReadRows(FormatXLSX, buf.Bytes())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"홍길동", "010-1234-5678", "남", "2024-03-01", "2024-03-15", "12345"}, rows[1])

	headers, err := MapHeaders(rows[0])
	require.NoError(t, err)

	payloads, errs := ValidateRows(rows[1:], headers)
	assert.Empty(t, errs)
	require.Len(t, payloads, 1)
	assert.Equal(t, calendar.New(2024, time.March, 15), payloads[0].Fields.ExpireDate)
	require.NotNil(t, payloads[0].Fields.StartDate)
	assert.Equal(t, calendar.New(2024, time.March, 1), *payloads[0].Fields.StartDate)
}

func TestCustomDateFormat(t *testing.T) {
	tests := []struct {
		format string
		want   bool
	}{
		{"yyyy.mm.dd", true},
		{"yyyy\"년\" m\"월\" d\"일\"", true},
		{"[$-412]mm/dd", true},
		{"hh:mm:ss", false},
		{"[Red]0.00", false},
		{"\"day \"0", false},
		{"#,##0", false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			assert.Equal(t, tt.want, customDateFormat(tt.format))
		})
	}
}
