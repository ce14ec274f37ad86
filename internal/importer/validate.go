// AngelaMos | 2026
// validate.go

package importer

import (
	"strings"

	"github.com/carterperez-dev/dojo-console/internal/calendar"
	"github.com/carterperez-dev/dojo-console/internal/member"
)

// Row-level rejection reasons, shown to gym staff as-is.
const (
	ReasonNameMissing   = "이름 누락"
	ReasonPhoneMissing  = "전화번호 누락"
	ReasonGenderInvalid = "성별은 남/여만 허용"
	ReasonExpireMissing = "만료일 누락"
	ReasonExpireFormat  = "만료일 형식 오류(YYYY-MM-DD)"
	ReasonStartFormat   = "시작일 형식 오류(YYYY-MM-DD)"
)

// firstDataRow is the 1-based sheet row of the first record; row 1 is
// the header.
const firstDataRow = 2

type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Payload is a validated spreadsheet row.
type Payload struct {
	Row    int
	Fields member.ImportFields
}

// ValidateRow checks a single data row. The first failing check wins.
func ValidateRow(row []string, headers HeaderMap, rowNumber int) (Payload, *RowError) {
	reject := func(reason string) (Payload, *RowError) {
		return Payload{}, &RowError{Row: rowNumber, Reason: reason}
	}

	name := headers.Cell(row, FieldName)
	if name == "" {
		return reject(ReasonNameMissing)
	}

	phone := member.NormalizePhone(headers.Cell(row, FieldPhone))
	if phone == "" {
		return reject(ReasonPhoneMissing)
	}

	gender, ok := member.ParseGender(headers.Cell(row, FieldGender))
	if !ok {
		return reject(ReasonGenderInvalid)
	}

	rawExpire := headers.Cell(row, FieldExpireDate)
	if rawExpire == "" {
		return reject(ReasonExpireMissing)
	}
	expireDate, ok := strictDate(rawExpire)
	if !ok {
		return reject(ReasonExpireFormat)
	}

	var startDate *calendar.Date
	if rawStart := headers.Cell(row, FieldStartDate); rawStart != "" {
		d, ok := strictDate(rawStart)
		if !ok {
			return reject(ReasonStartFormat)
		}
		startDate = &d
	}

	return Payload{
		Row: rowNumber,
		Fields: member.ImportFields{
			Name:       name,
			Phone:      phone,
			Gender:     gender,
			StartDate:  startDate,
			ExpireDate: expireDate,
			Memo:       member.NormalizeText(headers.Cell(row, FieldMemo)),
		},
	}, nil
}

// ValidateRows validates every data row after the header. Rows whose
// cells are all blank are skipped without being reported.
func ValidateRows(rows [][]string, headers HeaderMap) ([]Payload, []RowError) {
	var (
		payloads []Payload
		errs     []RowError
	)

	for i, row := range rows {
		if isBlank(row) {
			continue
		}

		payload, rowErr := ValidateRow(row, headers, i+firstDataRow)
		if rowErr != nil {
			errs = append(errs, *rowErr)
			continue
		}
		payloads = append(payloads, payload)
	}

	return payloads, errs
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func strictDate(raw string) (calendar.Date, bool) {
	if !calendar.IsStrict(raw) {
		return calendar.Date{}, false
	}
	d, err := calendar.Parse(raw)
	if err != nil {
		return calendar.Date{}, false
	}
	return d, true
}
