package normalize

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStringList(t *testing.T) {
	type testCase struct {
		input  any
		output []string
	}

	testCases := []testCase{
		{input: nil, output: nil},
		{input: "Action,Drama", output: []string{"Action", "Drama"}},
		{input: "Action | Drama|", output: []string{"Action", "Drama"}},
		{input: "Action, Action ,Drama", output: []string{"Action", "Drama"}},
		{input: []any{"Action", " Drama ", "", "Action"}, output: []string{"Action", "Drama"}},
		{input: "Thriller", output: []string{"Thriller"}},
		{input: float64(2020), output: []string{"2020"}},
	}

	for i, tc := range testCases {
		assert.Equal(t, tc.output, StringList(tc.input), "Test %d failed", i)
	}
}

func TestYear(t *testing.T) {
	current := strconv.Itoa(time.Now().Year())

	type testCase struct {
		input  any
		output string
	}

	testCases := []testCase{
		{input: "2019", output: "2019"},
		{input: float64(1987), output: "1987"},
		{input: "2021-06-11", output: "2021"},
		{input: "unknown", output: current},
		{input: nil, output: current},
	}

	for i, tc := range testCases {
		assert.Equal(t, tc.output, Year(tc.input), "Test %d failed", i)
	}
}

func TestNumber(t *testing.T) {
	assert.Equal(t, 7.5, Number("7.5"))
	assert.Equal(t, 7.5, Number(7.5))
	assert.Equal(t, float64(0), Number("n/a"))
	assert.Equal(t, float64(0), Number(nil))
	assert.Equal(t, 8.0, Number(" 8 "))
}

func TestBool(t *testing.T) {
	assert.True(t, Bool(true))
	assert.True(t, Bool("true"))
	assert.True(t, Bool("True"))
	assert.False(t, Bool("yes"))
	assert.False(t, Bool(1))
	assert.False(t, Bool(nil))
}
