package purify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinify(t *testing.T) {
	out, err := Minify([]byte(".a {\n  color: red;\n}\n"))
	require.NoError(t, err)
	assert.Equal(t, ".a{color:red}", string(out))

	out, err = Minify([]byte("/* note */\n.a,\n.b {\n  margin: 0;\n}\n"))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "note")
	assert.NotContains(t, string(out), "\n")
	assert.Contains(t, string(out), ".a,.b{")
}

func TestMinify_Empty(t *testing.T) {
	out, err := Minify(nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
