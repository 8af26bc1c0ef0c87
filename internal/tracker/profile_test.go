package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLimits = BodyLimits{
	Weight: Bounds{Min: 20, Max: 400},
	Height: Bounds{Min: 50, Max: 260},
}

func TestAdjustBodyValue(t *testing.T) {
	p := DefaultProfile()

	v, err := p.AdjustBodyValue(Weight, 0.1, testLimits)
	require.NoError(t, err)
	assert.Equal(t, 70.1, v)
	assert.Equal(t, 70.1, p.BodyValues.Weight)

	// repeated float steps stay on one decimal
	for i := 0; i < 3; i++ {
		_, err = p.AdjustBodyValue(Weight, 0.1, testLimits)
		require.NoError(t, err)
	}
	assert.Equal(t, 70.4, p.BodyValues.Weight)

	v, err = p.AdjustBodyValue(Height, -1, testLimits)
	require.NoError(t, err)
	assert.Equal(t, 174.0, v)
}

func TestAdjustBodyValueRejects(t *testing.T) {
	p := DefaultProfile()

	_, err := p.AdjustBodyValue(Weight, -60, testLimits)
	assert.ErrorIs(t, err, ErrBodyValueOutOfRange)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 70.0, p.BodyValues.Weight)

	_, err = p.AdjustBodyValue(Height, 100, testLimits)
	assert.ErrorIs(t, err, ErrBodyValueOutOfRange)
	assert.Equal(t, 175.0, p.BodyValues.Height)

	_, err = p.AdjustBodyValue("age", 1, testLimits)
	assert.ErrorIs(t, err, ErrUnknownBodyField)
}

func TestAdjustBodyValueUnbounded(t *testing.T) {
	p := DefaultProfile()
	v, err := p.AdjustBodyValue(Weight, -69.5, BodyLimits{})
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)
}
