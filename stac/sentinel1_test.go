package stac

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/venicegeo/eo-mapper/util"
)

func TestSearchSentinel1RTC_RequiresPlanetaryComputer(t *testing.T) {
	// Mock
	context := NewContext()
	context.Provider.Name = util.EarthSearch

	// Tested code
	_, err := SearchSentinel1RTC(mockSearchOptions(), context)

	// Asserts
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "require the Planetary Computer provider")
}

func TestSearchSentinel1RTC_RequiresSubscriptionKey(t *testing.T) {
	// Mock
	context := NewContext()
	context.SubscriptionKey = ""

	// Tested code
	_, err := SearchSentinel1RTC(mockSearchOptions(), context)

	// Asserts
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "subscription key")
}

func TestSearchSentinel1RTC_SearchesTheRTCCollection(t *testing.T) {
	// Mock
	context := NewContext()
	context.SubscriptionKey = "test-key"

	// Tested code
	scenes, err := SearchSentinel1RTC(mockSearchOptions(), context)

	// Asserts
	assert.Nil(t, err)
	assert.Len(t, scenes, 2)
}

func TestSearchSentinel1RTC_RequiresSTAC(t *testing.T) {
	// Mock
	os.Setenv(util.USE_STAC, "false")
	defer os.Unsetenv(util.USE_STAC)

	// Tested code
	_, err := SearchSentinel1RTC(mockSearchOptions(), NewContext())

	// Asserts
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "require STAC")
}
