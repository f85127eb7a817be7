package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := NewSet()

	assert.True(t, s.Add("https://hh.ru/vacancy/2"))
	assert.True(t, s.Add("https://hh.ru/vacancy/1"))
	assert.False(t, s.Add("https://hh.ru/vacancy/2"))

	assert.True(t, s.IsSeen("https://hh.ru/vacancy/1"))
	assert.False(t, s.IsSeen("https://hh.ru/vacancy/3"))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"https://hh.ru/vacancy/2", "https://hh.ru/vacancy/1"}, s.URLs())
}
