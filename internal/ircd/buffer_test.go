package ircd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineBufferCRLF(t *testing.T) {
	var b LineBuffer
	lines := b.Feed([]byte("NICK alice\r\nUSER alice 0 * :Alice A.\r\n"))
	require.Equal(t, []string{"NICK alice", "USER alice 0 * :Alice A."}, lines)
	require.True(t, b.Empty())
}

func TestLineBufferBareLF(t *testing.T) {
	var b LineBuffer
	lines := b.Feed([]byte("NICK alice\n"))
	require.Equal(t, []string{"NICK alice"}, lines)
}

func TestLineBufferSplitAcrossReads(t *testing.T) {
	var b LineBuffer
	require.Empty(t, b.Feed([]byte("NICK al")))
	require.True(t, b.Empty())
	lines := b.Feed([]byte("ice\r\n"))
	require.Equal(t, []string{"NICK alice"}, lines)
}

func TestLineBufferDropsBlankLines(t *testing.T) {
	var b LineBuffer
	lines := b.Feed([]byte("\r\n   \r\nNICK alice\r\n"))
	require.Equal(t, []string{"NICK alice"}, lines)
}

func TestLineBufferBareCRDoesNotTerminate(t *testing.T) {
	var b LineBuffer
	lines := b.Feed([]byte("NICK al\rice\n"))
	require.Equal(t, []string{"NICK al\rice"}, lines)
}
