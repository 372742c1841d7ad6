package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/domain"
	"github.com/sysu-ecnc-dev/working-week/backend/internal/workweek"
)

func referenceWorkingWeek() *domain.WorkingWeek {
	return &domain.WorkingWeek{
		Name: "参考工作周",
		Shifts: []domain.WorkingWeekShift{
			{ID: 1, Weekday: 1, StartTime: "09:30:00", EndTime: "12:30:00"},
			{ID: 2, Weekday: 1, StartTime: "13:30:00", EndTime: "17:30:00"},
			{ID: 3, Weekday: 2, StartTime: "09:30:00", EndTime: "12:30:00"},
			{ID: 4, Weekday: 3, StartTime: "09:30:00", EndTime: "12:30:00"},
		},
	}
}

func TestBuildWeek(t *testing.T) {
	week, err := BuildWeek(referenceWorkingWeek())
	require.NoError(t, err)

	assert.Equal(t, 13*time.Hour, week.TotalDuration())
	assert.Len(t, week.GetDay(time.Monday).Shifts(), 2)

	got, err := week.DateAdd(time.Date(2010, 7, 5, 9, 30, 0, 0, time.UTC), 7*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2010, 7, 5, 17, 30, 0, 0, time.UTC), got)
}

func TestBuildWeekMidnightShift(t *testing.T) {
	week, err := BuildWeek(&domain.WorkingWeek{
		Shifts: []domain.WorkingWeekShift{
			{Weekday: 5, StartTime: "20:00:00", EndTime: "24:00:00"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 4*time.Hour, week.TotalDuration())
}

func TestBuildWeekRejectsConflicts(t *testing.T) {
	ww := referenceWorkingWeek()
	ww.Shifts = append(ww.Shifts, domain.WorkingWeekShift{ID: 5, Weekday: 1, StartTime: "12:00:00", EndTime: "14:00:00"})

	_, err := BuildWeek(ww)
	assert.ErrorIs(t, err, workweek.ErrShiftConflict)
}

func TestValidateWorkingWeekShiftTime(t *testing.T) {
	tests := []struct {
		name    string
		shifts  []domain.WorkingWeekShift
		wantErr bool
	}{
		{"valid", referenceWorkingWeek().Shifts, false},
		{"touching shifts", []domain.WorkingWeekShift{
			{Weekday: 1, StartTime: "09:00:00", EndTime: "12:00:00"},
			{Weekday: 1, StartTime: "12:00:00", EndTime: "13:00:00"},
		}, false},
		{"same time on different days", []domain.WorkingWeekShift{
			{Weekday: 1, StartTime: "09:00:00", EndTime: "12:00:00"},
			{Weekday: 2, StartTime: "09:00:00", EndTime: "12:00:00"},
		}, false},
		{"overlap", []domain.WorkingWeekShift{
			{Weekday: 1, StartTime: "09:00:00", EndTime: "12:00:00"},
			{Weekday: 1, StartTime: "11:00:00", EndTime: "13:00:00"},
		}, true},
		{"end before start", []domain.WorkingWeekShift{
			{Weekday: 1, StartTime: "12:00:00", EndTime: "09:00:00"},
		}, true},
		{"bad format", []domain.WorkingWeekShift{
			{Weekday: 1, StartTime: "9点", EndTime: "12:00:00"},
		}, true},
		{"bad weekday", []domain.WorkingWeekShift{
			{Weekday: 7, StartTime: "09:00:00", EndTime: "12:00:00"},
		}, true},
		{"start at midnight end", []domain.WorkingWeekShift{
			{Weekday: 1, StartTime: "24:00:00", EndTime: "24:00:00"},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWorkingWeekShiftTime(&domain.WorkingWeek{Shifts: tt.shifts})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "wang-luo-zhong-xin", GenerateSlug("网络中心"))
	assert.Equal(t, "tu-shu-guan-a2", GenerateSlug("图书馆 A2"))
	assert.Equal(t, "front-desk", GenerateSlug("Front Desk!"))
	assert.Equal(t, "", GenerateSlug("   "))
}

func TestGenerateRandomWorkingWeekIsValid(t *testing.T) {
	for i := 0; i < 50; i++ {
		ww := GenerateRandomWorkingWeek()
		require.NoError(t, ValidateWorkingWeekShiftTime(ww))
		_, err := BuildWeek(ww)
		require.NoError(t, err)
	}
}

func TestParseShiftTime(t *testing.T) {
	tests := []struct {
		in       string
		expected time.Duration
		wantErr  bool
	}{
		{"09:30:00", 9*time.Hour + 30*time.Minute, false},
		{"09:30", 9*time.Hour + 30*time.Minute, false},
		{"09:30:00.000000", 9*time.Hour + 30*time.Minute, false},
		{"13:30:15.250000", 13*time.Hour + 30*time.Minute + 15*time.Second + 250*time.Millisecond, false},
		{"24:00", 24 * time.Hour, false},
		{"24:00:00", 24 * time.Hour, false},
		{"24:00:00.000000", 24 * time.Hour, false},
		{"24:00:00.000001", 0, true},
		{"24:00:00.", 0, true},
		{"24:30:00", 0, true},
		{"9点半", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseShiftTime(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeShiftTime(t *testing.T) {
	tests := map[string]string{
		"09:30":           "09:30:00",
		"09:30:00":        "09:30:00",
		"09:30:00.000000": "09:30:00",
		"00:00:00.000000": "00:00:00",
		"24:00:00.000000": "24:00:00",
		"24:00":           "24:00:00",
	}

	for in, expected := range tests {
		got, err := NormalizeShiftTime(in)
		require.NoError(t, err, in)
		assert.Equal(t, expected, got, in)
	}

	_, err := NormalizeShiftTime("25:00:00")
	assert.Error(t, err)
}

// 数据库 TIME 列经 pgx 读出后的写法
func TestBuildWeekFromDatabaseTimeFormat(t *testing.T) {
	ww := &domain.WorkingWeek{
		Shifts: []domain.WorkingWeekShift{
			{ID: 1, Weekday: 1, StartTime: "09:30:00.000000", EndTime: "12:30:00.000000"},
			{ID: 2, Weekday: 5, StartTime: "20:00:00.000000", EndTime: "24:00:00.000000"},
		},
	}

	require.NoError(t, ValidateWorkingWeekShiftTime(ww))

	week, err := BuildWeek(ww)
	require.NoError(t, err)
	assert.Equal(t, 7*time.Hour, week.TotalDuration())

	// 2010-07-09 是周五
	assert.True(t, week.IsWorking(time.Date(2010, time.July, 9, 23, 59, 0, 0, time.UTC)))

	shift := ww.Shifts[1]
	require.NoError(t, NormalizeWorkingWeekShift(&shift))
	assert.Equal(t, "20:00:00", shift.StartTime)
	assert.Equal(t, "24:00:00", shift.EndTime)
}
