// AngelaMos | 2026
// lifecycle_test.go

package member

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/dojo-console/internal/calendar"
	"github.com/carterperez-dev/dojo-console/internal/core"
)

var seoul = time.FixedZone("KST", 9*60*60)

func activeMember() Member {
	return Member{
		ID:              "m-1",
		GymID:           "g-1",
		Name:            "Kim",
		Phone:           "01012345678",
		Gender:          GenderMale,
		ExpireDate:      calendar.New(2024, time.March, 31),
		MembershipState: StateActive,
	}
}

func TestPause(t *testing.T) {
	now := time.Date(2024, time.March, 1, 10, 0, 0, 0, seoul)

	paused, err := Pause(activeMember(), now)
	require.NoError(t, err)

	assert.Equal(t, StatePaused, paused.MembershipState)
	require.NotNil(t, paused.PausedAt)
	assert.True(t, paused.PausedAt.Equal(now))
	assert.Equal(t, calendar.New(2024, time.March, 31), paused.ExpireDate)
	assert.Equal(t, 0, paused.PausedDaysTotal)
}

func TestPauseTwiceKeepsOriginalInstant(t *testing.T) {
	first := time.Date(2024, time.March, 1, 10, 0, 0, 0, seoul)
	second := first.Add(72 * time.Hour)

	paused, err := Pause(activeMember(), first)
	require.NoError(t, err)

	again, err := Pause(paused, second)
	require.NoError(t, err)
	assert.True(t, again.PausedAt.Equal(first))
}

func TestResumeSameDayCreditsNothing(t *testing.T) {
	pausedAt := time.Date(2024, time.March, 1, 9, 0, 0, 0, seoul)
	now := time.Date(2024, time.March, 1, 21, 0, 0, 0, seoul)

	m, err := Pause(activeMember(), pausedAt)
	require.NoError(t, err)

	resumed, days, err := Resume(m, now, seoul)
	require.NoError(t, err)

	assert.Equal(t, 0, days)
	assert.Equal(t, calendar.New(2024, time.March, 31), resumed.ExpireDate)
	assert.Equal(t, 0, resumed.PausedDaysTotal)
	assert.Equal(t, StateActive, resumed.MembershipState)
	assert.Nil(t, resumed.PausedAt)
}

func TestResumeExtendsByPausedDays(t *testing.T) {
	pausedAt := time.Date(2024, time.March, 1, 23, 30, 0, 0, seoul)
	now := time.Date(2024, time.March, 6, 0, 10, 0, 0, seoul)

	m, err := Pause(activeMember(), pausedAt)
	require.NoError(t, err)
	m.PausedDaysTotal = 3

	resumed, days, err := Resume(m, now, seoul)
	require.NoError(t, err)

	assert.Equal(t, 5, days)
	assert.Equal(t, calendar.New(2024, time.April, 5), resumed.ExpireDate)
	assert.Equal(t, 8, resumed.PausedDaysTotal)
	assert.Equal(t, StateActive, resumed.MembershipState)
	assert.Nil(t, resumed.PausedAt)
}

func TestResumeUsesLocalCalendarDays(t *testing.T) {
	// 2024-03-01 23:30 KST is still 2024-03-01 14:30 UTC.
	pausedAt := time.Date(2024, time.March, 1, 14, 30, 0, 0, time.UTC)
	now := time.Date(2024, time.March, 1, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, 1, PausedDays(pausedAt, now, seoul))
	assert.Equal(t, 0, PausedDays(pausedAt, now, time.UTC))
}

func TestResumeClockSkewNeverShortens(t *testing.T) {
	pausedAt := time.Date(2024, time.March, 5, 9, 0, 0, 0, seoul)
	now := time.Date(2024, time.March, 3, 9, 0, 0, 0, seoul)

	m, err := Pause(activeMember(), pausedAt)
	require.NoError(t, err)

	resumed, days, err := Resume(m, now, seoul)
	require.NoError(t, err)
	assert.Equal(t, 0, days)
	assert.Equal(t, calendar.New(2024, time.March, 31), resumed.ExpireDate)
}

func TestResumeActiveMemberFails(t *testing.T) {
	m := activeMember()
	m.PausedDaysTotal = 4

	got, days, err := Resume(m, time.Now(), seoul)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidState)

	assert.Equal(t, 0, days)
	assert.Equal(t, m, got)
}

func TestLifecycleRejectsDeletedMember(t *testing.T) {
	deletedAt := time.Date(2024, time.February, 1, 0, 0, 0, 0, seoul)
	m := activeMember()
	m.DeletedAt = &deletedAt

	_, err := Pause(m, time.Now())
	assert.ErrorIs(t, err, core.ErrNotFound)

	m.MembershipState = StatePaused
	m.PausedAt = &deletedAt
	_, _, err = Resume(m, time.Now(), seoul)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
