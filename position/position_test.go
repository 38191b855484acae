package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToA1(t *testing.T) {
	cases := []struct {
		pos  Position
		want string
	}{
		{Position{Row: 0, Col: 0}, "A1"},
		{Position{Row: 0, Col: 25}, "Z1"},
		{Position{Row: 0, Col: 26}, "AA1"},
		{Position{Row: 9, Col: 27}, "AB10"},
		{Position{Row: 0, Col: 701}, "ZZ1"},
		{Position{Row: 0, Col: 702}, "AAA1"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.pos.ToA1())
	}
}

func TestFromA1RoundTrip(t *testing.T) {
	addrs := []string{"A1", "Z1", "AA1", "AB10", "ZZ1", "AAA1"}
	for _, addr := range addrs {
		pos, ok := FromA1(addr)
		assert.True(t, ok, addr)
		assert.Equal(t, addr, pos.ToA1())
	}
}

func TestFromA1CaseInsensitive(t *testing.T) {
	pos, ok := FromA1("b2")
	assert.True(t, ok)
	assert.Equal(t, Position{Row: 1, Col: 1}, pos)
}

func TestFromA1Invalid(t *testing.T) {
	cases := []string{"", "1", "A", "A0", "1A", "A-1", "A1B"}
	for _, c := range cases {
		_, ok := FromA1(c)
		assert.False(t, ok, c)
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, Position{Row: 0, Col: 0}.IsValid())
	assert.True(t, Position{Row: MaxRows - 1, Col: MaxCols - 1}.IsValid())
	assert.False(t, Position{Row: -1, Col: 0}.IsValid())
	assert.False(t, Position{Row: 0, Col: -1}.IsValid())
	assert.False(t, Position{Row: MaxRows, Col: 0}.IsValid())
	assert.False(t, Position{Row: 0, Col: MaxCols}.IsValid())
}

func TestLess(t *testing.T) {
	assert.True(t, Position{Row: 0, Col: 5}.Less(Position{Row: 1, Col: 0}))
	assert.True(t, Position{Row: 2, Col: 0}.Less(Position{Row: 2, Col: 1}))
	assert.False(t, Position{Row: 2, Col: 1}.Less(Position{Row: 2, Col: 1}))
}

func TestSizeString(t *testing.T) {
	assert.True(t, Size{}.IsZero())
	assert.False(t, Size{Rows: 1, Cols: 0}.IsZero())
	assert.Equal(t, "3x2", Size{Rows: 3, Cols: 2}.String())
}
