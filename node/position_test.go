package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPosition(t *testing.T) {
	t.Run("middle node has both neighbors distinct", func(t *testing.T) {
		// Arrange & Act
		var p = newPosition(5, 2)

		// Assert
		assert.Equal(t, 1, p.leftIndex)
		assert.Equal(t, 3, p.rightIndex)
	})

	t.Run("index 0 wraps left to n-1", func(t *testing.T) {
		var p = newPosition(5, 0)
		assert.Equal(t, 4, p.leftIndex)
		assert.Equal(t, 1, p.rightIndex)
	})

	t.Run("last index wraps right to 0", func(t *testing.T) {
		var p = newPosition(5, 4)
		assert.Equal(t, 3, p.leftIndex)
		assert.Equal(t, 0, p.rightIndex)
	})

	t.Run("n=1 both neighbors are self", func(t *testing.T) {
		var p = newPosition(1, 0)
		assert.Equal(t, 0, p.leftIndex)
		assert.Equal(t, 0, p.rightIndex)
	})

	t.Run("n=2 each node's left and right are the same other node", func(t *testing.T) {
		var p = newPosition(2, 0)
		assert.Equal(t, 1, p.leftIndex)
		assert.Equal(t, 1, p.rightIndex)
	})
}

func TestPortResolution(t *testing.T) {
	// Arrange
	var p = newPosition(5, 2)

	// Act & Assert
	assert.Equal(t, 9001, p.leftPort(9000))
	assert.Equal(t, 9003, p.rightPort(9000))
}
