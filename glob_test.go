package vfs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/vfs"
)

func TestCompileGlobMatchesEverythingByDefault(t *testing.T) {
	re, err := vfs.CompileGlob("")
	require.NoError(t, err)
	assert.True(t, re.MatchString("anything.txt"))
}

func TestCompileGlobExtensionFilterIsCaseInsensitive(t *testing.T) {
	re, err := vfs.CompileGlob("*.TXT")
	require.NoError(t, err)
	assert.True(t, re.MatchString("report.txt"))
	assert.True(t, re.MatchString("REPORT.TXT"))
	assert.False(t, re.MatchString("report.csv"))
}

func TestCompileGlobSingleCharWildcard(t *testing.T) {
	re, err := vfs.CompileGlob("a?c")
	require.NoError(t, err)
	assert.True(t, re.MatchString("abc"))
	assert.False(t, re.MatchString("ac"))
	assert.False(t, re.MatchString("abbc"))
}
