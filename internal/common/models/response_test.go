package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	page, perPage, offset := NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, perPage)
	assert.Equal(t, 0, offset)

	page, perPage, offset = NormalizePage(3, 500)
	assert.Equal(t, 3, page)
	assert.Equal(t, 100, perPage)
	assert.Equal(t, 200, offset)
}
