package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalTitleID(t *testing.T) {
	type testCase struct {
		input  string
		output string
		legacy bool
	}

	testCases := []testCase{
		{input: "mov:abc-123", output: "abc-123", legacy: true},
		{input: "abc-123", output: "abc-123", legacy: false},
		{input: "mov:", output: "", legacy: true},
		{input: "movie-42", output: "movie-42", legacy: false},
	}

	for i, tc := range testCases {
		got, legacy := CanonicalTitleID(tc.input)
		assert.Equal(t, tc.output, got, "Test %d failed", i)
		assert.Equal(t, tc.legacy, legacy, "Test %d failed", i)
	}
}
