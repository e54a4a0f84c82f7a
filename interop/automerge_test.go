package interop

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAutomergeAgentByteInvertsSelf(t *testing.T) {
	for i := 0; i < 256; i++ {
		b := AutomergeAgentByte(uint8(i))
		require.Equal(t, uint8(i), AutomergeAgentIndex(b))
	}
}

func TestAutomergeAgentByteReversesOrder(t *testing.T) {
	require.Equal(t, byte(255), AutomergeAgentByte(0))
	require.Equal(t, byte(0), AutomergeAgentByte(255))
	require.Less(t, AutomergeAgentByte(2), AutomergeAgentByte(1))
}
