package numberutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToIntWithDefault(t *testing.T) {
	assert.Equal(t, 7, ToIntWithDefault("7", 1))
	assert.Equal(t, 7, ToIntWithDefault(" 7 ", 1))
	assert.Equal(t, 1, ToIntWithDefault("", 1))
	assert.Equal(t, 1, ToIntWithDefault("abc", 1))
	assert.Equal(t, -3, ToIntWithDefault("-3", 1))
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 1, ClampInt(0, 1, 100))
	assert.Equal(t, 100, ClampInt(500, 1, 100))
	assert.Equal(t, 20, ClampInt(20, 1, 100))
}

func TestToInt64WithError(t *testing.T) {
	v, err := ToInt64WithError("707860")
	require.NoError(t, err)
	assert.Equal(t, int64(707860), v)

	_, err = ToInt64WithError("12a")
	assert.Error(t, err)
	assert.False(t, IsInt64Positive(0))
	assert.True(t, IsInt64Positive(1))
}

func TestToFloat64WithError(t *testing.T) {
	v, err := ToFloat64WithError("-34.6037")
	require.NoError(t, err)
	assert.InDelta(t, -34.6037, v, 1e-9)

	_, err = ToFloat64WithError("NaN")
	assert.Error(t, err)
	_, err = ToFloat64WithError("north")
	assert.Error(t, err)

	assert.True(t, IsFloat64InRange(90, -90, 90))
	assert.False(t, IsFloat64InRange(90.0001, -90, 90))
}

func TestToBoolWithDefault(t *testing.T) {
	assert.True(t, ToBoolWithDefault("true", false))
	assert.True(t, ToBoolWithDefault("1", false))
	assert.False(t, ToBoolWithDefault("FALSE", true))
	assert.True(t, ToBoolWithDefault("", true))
	assert.False(t, ToBoolWithDefault("maybe", false))
}
