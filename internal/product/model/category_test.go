package model

import (
	"testing"

	perrors "github.com/abgdnv/productcatalog/internal/product/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseCategory(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expected    Category
		expectError error
	}{
		{name: "Success - UNKNOWN", input: "UNKNOWN", expected: CategoryUnknown},
		{name: "Success - CLOTHS", input: "CLOTHS", expected: CategoryCloths},
		{name: "Success - FOOD", input: "FOOD", expected: CategoryFood},
		{name: "Success - HOUSEWARES", input: "HOUSEWARES", expected: CategoryHousewares},
		{name: "Success - AUTOMOTIVE", input: "AUTOMOTIVE", expected: CategoryAutomotive},
		{name: "Success - TOOLS", input: "TOOLS", expected: CategoryTools},
		{name: "Error - misspelled", input: "CLOTHES", expectError: perrors.ErrDataValidation},
		{name: "Error - lower case", input: "food", expectError: perrors.ErrDataValidation},
		{name: "Error - empty", input: "", expectError: perrors.ErrDataValidation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// when
			category, err := ParseCategory(tc.input)
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, category)
			assert.Equal(t, tc.input, category.String())
		})
	}
}

func Test_Category_Ordinals(t *testing.T) {
	all := Categories()
	require.Len(t, all, 6)
	for i, c := range all {
		assert.Equal(t, i, int(c))
		assert.True(t, c.IsValid())
	}
	assert.False(t, Category(6).IsValid())
	assert.False(t, Category(-1).IsValid())
	assert.Equal(t, "Category(42)", Category(42).String())
}

func Test_Category_Text(t *testing.T) {
	// given
	text, err := CategoryHousewares.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "HOUSEWARES", string(text))

	// when
	var c Category
	err = c.UnmarshalText(text)

	// then
	require.NoError(t, err)
	assert.Equal(t, CategoryHousewares, c)

	_, err = Category(9).MarshalText()
	assert.ErrorIs(t, err, perrors.ErrDataValidation)
	assert.ErrorIs(t, c.UnmarshalText([]byte("BOOKS")), perrors.ErrDataValidation)
	assert.Equal(t, CategoryHousewares, c, "failed unmarshal must not change the value")
}
