package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aolivares/school-library-service/internal/model"
)

func TestCeilDays(t *testing.T) {
	t.Parallel()
	var tests = []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{
			name: "same instant",
			from: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "whole days",
			from: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			want: 14,
		},
		{
			name: "partial day rounds up",
			from: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2024, 3, 2, 1, 0, 0, 0, time.UTC),
			want: 2,
		},
		{
			name: "negative span",
			from: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
			want: -2,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, model.CeilDays(tt.from, tt.to))
		})
	}
}

func TestLateDays(t *testing.T) {
	t.Parallel()
	expected := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)

	require.Equal(t, 0, model.LateDays(expected, expected), "on the expected date is not late")
	require.Equal(t, 0, model.LateDays(expected, expected.AddDate(0, 0, -3)), "early is not late")
	require.Equal(t, 5, model.LateDays(expected, expected.AddDate(0, 0, 5)))
	require.Equal(t, 1, model.LateDays(expected, expected.Add(time.Hour)), "partial day counts whole")
}

func TestDateJSON(t *testing.T) {
	t.Parallel()

	d := model.NewDate(2024, 5, 20)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2024-05-20"`, string(data))

	var got model.Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-05-20"`), &got))
	require.True(t, got.Equal(d.Time))

	require.Error(t, json.Unmarshal([]byte(`"20.05.2024"`), &got))
}
