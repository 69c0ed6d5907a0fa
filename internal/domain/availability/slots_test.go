package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlots_WorkingDay(t *testing.T) {
	slots, err := GenerateSlots("09:00", "17:00", 30)
	require.NoError(t, err)
	assert.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "09:30", slots[1])
	assert.Equal(t, "16:30", slots[len(slots)-1])
}

func TestGenerateSlots_RejectsEmptyOrInvertedRange(t *testing.T) {
	_, err := GenerateSlots("09:00", "09:00", 30)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = GenerateSlots("10:00", "09:00", 30)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestGenerateSlots_NoPartialSlot(t *testing.T) {
	slots, err := GenerateSlots("09:00", "09:20", 30)
	require.NoError(t, err)
	assert.Empty(t, slots)

	slots, err = GenerateSlots("09:00", "10:15", 30)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, slots)
}

func TestGenerateSlots_InvalidInput(t *testing.T) {
	_, err := GenerateSlots("9am", "17:00", 30)
	assert.ErrorIs(t, err, ErrInvalidTime)

	_, err = GenerateSlots("09:00", "17:00", 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestParseClock_RequiresPaddedHours(t *testing.T) {
	minutes, err := ParseClock("09:00")
	require.NoError(t, err)
	assert.Equal(t, 540, minutes)
	assert.Equal(t, "09:00", FormatClock(minutes))

	for _, in := range []string{"9:00", "09:5", "9:5", "24:00", "09:00:00"} {
		_, err := ParseClock(in)
		assert.ErrorIs(t, err, ErrInvalidTime, in)
	}
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	a, _ := GenerateSlots("08:15", "12:00", 45)
	b, _ := GenerateSlots("08:15", "12:00", 45)
	assert.Equal(t, a, b)
	assert.Equal(t, []string{"08:15", "09:00", "09:45", "10:30", "11:15"}, a)
}

func TestVerificationCallSlots(t *testing.T) {
	assert.Equal(t, []string{"15:00", "15:30", "16:00", "16:30", "17:00", "17:30"}, VerificationCallSlots())
}

func TestMergeAndRemoveSlots(t *testing.T) {
	merged := MergeSlots([]string{"10:00", "09:00"}, []string{"09:00", "11:00"})
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, merged)

	remaining, found := RemoveSlot(merged, "10:00")
	assert.True(t, found)
	assert.Equal(t, []string{"09:00", "11:00"}, remaining)

	_, found = RemoveSlot(remaining, "12:00")
	assert.False(t, found)
	assert.True(t, Contains(remaining, "11:00"))
}
