package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%camp%", ContainsPattern("camp"))
	assert.Equal(t, `%50\% off%`, ContainsPattern("50% off"))
	assert.Equal(t, `%a\_b%`, ContainsPattern("a_b"))
	assert.Equal(t, `%c:\\tmp%`, ContainsPattern(`c:\tmp`))
	assert.Equal(t, "%%", ContainsPattern(""))
}
