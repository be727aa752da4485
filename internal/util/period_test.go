package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreviousPeriod(t *testing.T) {
	assert.Equal(t, "2025-11", PreviousPeriod("2025-12"))
	assert.Equal(t, "2024-12", PreviousPeriod("2025-01"))
	assert.Equal(t, "", PreviousPeriod("2025-13"))
	assert.Equal(t, "", PreviousPeriod("december"))
	assert.Equal(t, "", PreviousPeriod(""))
}

func TestValidPeriod(t *testing.T) {
	assert.True(t, ValidPeriod("2025-01"))
	assert.False(t, ValidPeriod("2025-1"))
	assert.False(t, ValidPeriod("2025"))
}
