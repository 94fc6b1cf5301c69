package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMessageRoundTrip(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	var sent = NewOut(123, 1, 4, Right, 6)

	// Act
	var err = WriteMessage(&buf, sent)
	require.NoError(t, err)

	var got []Message
	readErr := ReadLines(&buf, func(m Message) { got = append(got, m) })

	// Assert
	require.NoError(t, readErr)
	require.Len(t, got, 1)
	assert.Equal(t, sent, got[0])
}

func TestReadLinesDropsMalformedLines(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	buf.WriteString("not json at all\n")
	require.NoError(t, WriteMessage(&buf, NewIn(5, 0, Left, 1)))
	buf.WriteString("{\"type\": \n")

	// Act
	var got []Message
	var err = ReadLines(&buf, func(m Message) { got = append(got, m) })

	// Assert
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, In, got[0].Type)
}

func TestReadLinesSkipsBlankLines(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	buf.WriteString("\n\n")
	require.NoError(t, WriteMessage(&buf, NewAnnounce(1, 1, Left, 0)))

	// Act
	var got []Message
	var err = ReadLines(&buf, func(m Message) { got = append(got, m) })

	// Assert
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestResolveSide(t *testing.T) {
	t.Run("matches left neighbor", func(t *testing.T) {
		assert.Equal(t, SideLeft, ResolveSide(2, 2, 4))
	})

	t.Run("matches right neighbor", func(t *testing.T) {
		assert.Equal(t, SideRight, ResolveSide(4, 2, 4))
	})

	t.Run("matches neither", func(t *testing.T) {
		assert.Equal(t, SideUnknown, ResolveSide(9, 2, 4))
	})
}

func TestSideString(t *testing.T) {
	assert.Equal(t, "left", SideLeft.String())
	assert.Equal(t, "right", SideRight.String())
	assert.Equal(t, "unknown", SideUnknown.String())
}
