// AngelaMos | 2026
// dryrun_test.go

package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDryRunCountsRepeatsAsUpdates(t *testing.T) {
	csv := "이름,전화번호,성별,만료일\n" +
		"홍길동,010-1111-2222,남,2024-12-31\n" +
		"김영희,010-3333-4444,여,2024-11-30\n" +
		"홍길동,01011112222,남자,2025-03-31\n" +
		",010-5555-6666,여,2024-10-01\n"

	res, err := DryRun(FormatCSV, []byte(csv))
	require.NoError(t, err)

	assert.Len(t, res.Payloads, 3)
	assert.Equal(t, 2, res.Creates())
	assert.Equal(t, 1, res.Updates())
	assert.Equal(t, []int{4}, res.Repeats["01011112222"])
	require.Len(t, res.Errors, 1)
	assert.Equal(t, RowError{Row: 5, Reason: ReasonNameMissing}, res.Errors[0])
}

func TestDryRunRejectsLikeImport(t *testing.T) {
	_, err := DryRun(FormatCSV, []byte("name,phone,gender,expire_date\n"))
	assert.ErrorIs(t, err, ErrNoDataRows)

	_, err = DryRun(FormatCSV, []byte("name,phone\nA,010\n"))
	assert.ErrorIs(t, err, ErrMissingHeaders)

	_, err = DryRun(FormatCSV, []byte("  \n"))
	assert.ErrorIs(t, err, ErrEmptyFile)
}
