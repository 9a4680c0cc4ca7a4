package nasc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nasc "github.com/toutaio/nasc"
)

func TestCreateTokenYieldsDistinctValuesForSameDescription(t *testing.T) {
	a := nasc.CreateToken("Logger")
	b := nasc.CreateToken("Logger")

	require.NotSame(t, a, b)
	assert.Equal(t, "Logger", a.Description())
	assert.Equal(t, "Logger", b.Description())
}

func TestIsToken(t *testing.T) {
	tok := nasc.CreateToken("Anything")
	assert.True(t, nasc.IsToken(tok))
	assert.False(t, nasc.IsToken("not a token"))
	assert.False(t, nasc.IsToken(42))
	assert.False(t, nasc.IsToken(nil))
}
