//go:build unit
// +build unit

package library

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRating_MarshalJSON_KeepsScale(t *testing.T) {
	tests := []struct {
		name   string
		rating Rating
		want   string
	}{
		{name: "half star", rating: NewRating(decimal.RequireFromString("4.5")), want: `"4.50"`},
		{name: "whole star", rating: NewRating(decimal.NewFromInt(3)), want: `"3.00"`},
		{name: "quarter star", rating: NewRating(decimal.RequireFromString("2.25")), want: `"2.25"`},
		{name: "missing", rating: Rating{}, want: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.rating)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestRating_UnmarshalJSON(t *testing.T) {
	var status Status
	require.NoError(t, json.Unmarshal([]byte(`{"rating":"4.50"}`), &status))
	require.True(t, status.Rating.Valid)
	assert.True(t, decimal.RequireFromString("4.5").Equal(status.Rating.Decimal))

	var unrated Status
	require.NoError(t, json.Unmarshal([]byte(`{"rating":null}`), &unrated))
	assert.False(t, unrated.Rating.Valid)
}

func TestStatus_RatingInsideDocument(t *testing.T) {
	data, err := json.Marshal(&Status{ID: 1, Type: StatusTypeReview, Rating: NewRating(decimal.RequireFromString("4.5"))})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rating":"4.50"`)
}
