package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTicketNumber(t *testing.T) {
	tests := []struct {
		ordinal uint64
		want    string
	}{
		{1, "T001"},
		{2, "T002"},
		{42, "T042"},
		{999, "T999"},
		{1000, "T1000"}, // width grows past three digits, no truncation
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTicketNumber(tt.ordinal))
	}
}
