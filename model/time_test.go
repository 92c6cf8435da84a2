package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSensingTime(t *testing.T) {
	// Mock
	inputs := []string{
		"2022-06-25T10:16:11.024000Z",
		"2022-06-25T10:16:11Z",
		"2022-06-25T10:16:11",
		"2022-06-25T10:16:11+00:00",
	}

	for _, input := range inputs {
		// Tested code
		parsed, err := ParseSensingTime(input)

		// Asserts
		assert.Nil(t, err, "parsing %s", input)
		assert.Equal(t, 2022, parsed.Year())
		assert.Equal(t, time.June, parsed.Month())
		assert.Equal(t, 25, parsed.Day())
		assert.Equal(t, 10, parsed.Hour())
	}
}

func TestParseSensingTime_Unparseable(t *testing.T) {
	// Tested code
	_, err := ParseSensingTime("25.06.2022 10:16")

	// Asserts
	assert.NotNil(t, err)
}

func TestSensingDate_SameDayAcrossTiles(t *testing.T) {
	// Mock
	tileA := time.Date(2022, 6, 25, 10, 16, 11, 0, time.UTC)
	tileB := time.Date(2022, 6, 25, 10, 16, 41, 0, time.UTC)

	// Tested code + Asserts
	assert.Equal(t, SensingDate(tileA), SensingDate(tileB))
	assert.Equal(t, time.Date(2022, 6, 25, 0, 0, 0, 0, time.UTC), SensingDate(tileA))
}
