// AngelaMos | 2026
// headers.go

package importer

import (
	"strings"
	"unicode"
)

type Field string

const (
	FieldName       Field = "name"
	FieldPhone      Field = "phone"
	FieldGender     Field = "gender"
	FieldStartDate  Field = "start_date"
	FieldExpireDate Field = "expire_date"
	FieldMemo       Field = "memo"
)

var requiredFields = []Field{
	FieldName,
	FieldPhone,
	FieldGender,
	FieldExpireDate,
}

var headerSynonyms = map[string]Field{
	"name":        FieldName,
	"이름":          FieldName,
	"phone":       FieldPhone,
	"전화번호":        FieldPhone,
	"전화":          FieldPhone,
	"gender":      FieldGender,
	"성별":          FieldGender,
	"start_date":  FieldStartDate,
	"시작일":         FieldStartDate,
	"expire_date": FieldExpireDate,
	"만료일":         FieldExpireDate,
	"memo":        FieldMemo,
	"메모":          FieldMemo,
}

// HeaderMap is the column index of each recognised field.
type HeaderMap map[Field]int

// Cell returns the trimmed value of field in row, or "" when the column
// is unmapped or the row is short.
func (h HeaderMap) Cell(row []string, field Field) string {
	idx, ok := h[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func NormalizeHeader(header string) string {
	header = strings.TrimPrefix(header, "\uFEFF")
	header = strings.ToLower(strings.TrimSpace(header))
	header = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, header)
	return strings.ReplaceAll(header, "-", "_")
}

// MapHeaders matches the header row against the synonym table. The first
// column wins when a field appears twice; unknown columns are ignored.
func MapHeaders(header []string) (HeaderMap, error) {
	mapped := make(HeaderMap, len(headerSynonyms))

	for idx, raw := range header {
		field, ok := headerSynonyms[NormalizeHeader(raw)]
		if !ok {
			continue
		}
		if _, seen := mapped[field]; seen {
			continue
		}
		mapped[field] = idx
	}

	var missing []string
	for _, field := range requiredFields {
		if _, ok := mapped[field]; !ok {
			missing = append(missing, string(field))
		}
	}
	if len(missing) > 0 {
		return nil, &MissingHeadersError{Missing: missing}
	}

	return mapped, nil
}
