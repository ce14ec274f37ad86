// AngelaMos | 2026
// normalize_test.go

package member

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "01012345678", NormalizePhone("010-1234-5678"))
	assert.Equal(t, "01012345678", NormalizePhone(" (010) 1234 5678 "))
	assert.Equal(t, "", NormalizePhone("n/a"))
}

func TestParseGender(t *testing.T) {
	tests := []struct {
		raw  string
		want Gender
		ok   bool
	}{
		{"남", GenderMale, true},
		{"남자", GenderMale, true},
		{"Male", GenderMale, true},
		{" M ", GenderMale, true},
		{"여", GenderFemale, true},
		{"여자", GenderFemale, true},
		{"FEMALE", GenderFemale, true},
		{"f", GenderFemale, true},
		{"x", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseGender(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBelt(t *testing.T) {
	b, ok := ParseBelt("파란띠")
	require.True(t, ok)
	assert.Equal(t, BeltBlue, b)

	b, ok = ParseBelt("purple")
	require.True(t, ok)
	assert.Equal(t, BeltPurple, b)

	b, ok = ParseBelt("Gray")
	require.True(t, ok)
	assert.Equal(t, BeltGrey, b)

	_, ok = ParseBelt("red")
	assert.False(t, ok)
}

func TestBeltRankIsOrdered(t *testing.T) {
	assert.Equal(t, 0, BeltWhite.Rank())
	assert.Equal(t, 7, BeltBlack.Rank())
	assert.Less(t, BeltBlue.Rank(), BeltPurple.Rank())
	assert.Equal(t, -1, Belt("RED").Rank())
}

func TestValidBeltDegree(t *testing.T) {
	assert.True(t, ValidBeltDegree(0))
	assert.True(t, ValidBeltDegree(4))
	assert.False(t, ValidBeltDegree(5))
	assert.False(t, ValidBeltDegree(-1))
}

func TestNormalizeText(t *testing.T) {
	assert.Nil(t, NormalizeText("   "))

	got := NormalizeText("  note  ")
	require.NotNil(t, got)
	assert.Equal(t, "note", *got)
}
