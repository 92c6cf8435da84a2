package stac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchSentinel2_FiltersByCloudCover(t *testing.T) {
	// Mock
	options := mockSearchOptions()
	options.Collection = ""

	// Tested code
	scenes, err := SearchSentinel2(options, L2A, 50, NewContext())

	// Asserts
	assert.Nil(t, err)
	assert.Len(t, scenes, 1)
	assert.Equal(t, "S2A_OPER_MSI_L2A_TL_20220625_T32TMT", scenes[0].SceneID)
}

func TestSearchSentinel2_KeepsAllScenesBelowThreshold(t *testing.T) {
	// Tested code
	scenes, err := SearchSentinel2(mockSearchOptions(), L2A, 100, NewContext())

	// Asserts
	assert.Nil(t, err)
	assert.Len(t, scenes, 2)
}

func TestSearchSentinel2_UnknownProcessingLevel(t *testing.T) {
	// Tested code
	_, err := SearchSentinel2(mockSearchOptions(), ProcessingLevel("Level-3X"), 100, NewContext())

	// Asserts
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "Unrecognized Sentinel-2 processing level")
}
