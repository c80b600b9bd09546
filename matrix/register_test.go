package matrix_test

import (
	"testing"

	"github.com/plus3/dotfall/matrix"
	"github.com/stretchr/testify/assert"
)

func TestParseRegister(t *testing.T) {
	for b := 0; b <= 0xC; b++ {
		r, err := matrix.ParseRegister(byte(b))
		assert.NoError(t, err)
		assert.Equal(t, byte(b), r.Byte())
	}

	r, err := matrix.ParseRegister(0xF)
	assert.NoError(t, err)
	assert.Equal(t, matrix.RegDisplayTest, r)

	for _, b := range []byte{0xD, 0xE, 0x10, 0xFF} {
		_, err := matrix.ParseRegister(b)
		assert.ErrorIs(t, err, matrix.ErrRegister, "0x%02X", b)
	}
}

func TestDigitRegister(t *testing.T) {
	r, err := matrix.DigitRegister(0)
	assert.NoError(t, err)
	assert.Equal(t, matrix.RegDigit0, r)

	r, err = matrix.DigitRegister(7)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x8), r.Byte())

	row, ok := r.Row()
	assert.True(t, ok)
	assert.Equal(t, 7, row)

	_, ok = matrix.RegIntensity.Row()
	assert.False(t, ok)

	_, err = matrix.DigitRegister(8)
	assert.ErrorIs(t, err, matrix.ErrRegister)
	_, err = matrix.DigitRegister(-1)
	assert.ErrorIs(t, err, matrix.ErrRegister)
}

func TestValueSets(t *testing.T) {
	i, err := matrix.ParseIntensity(0xF)
	assert.NoError(t, err)
	assert.Equal(t, matrix.MaxIntensity, i)
	assert.Equal(t, "31/32", i.String())
	_, err = matrix.ParseIntensity(0x10)
	assert.ErrorIs(t, err, matrix.ErrIntensity)

	s, err := matrix.ParseScanLimit(7)
	assert.NoError(t, err)
	assert.Equal(t, matrix.ScanAll, s)
	_, err = matrix.ParseScanLimit(8)
	assert.ErrorIs(t, err, matrix.ErrScanLimit)

	d, err := matrix.ParseDecodeMode(0xFF)
	assert.NoError(t, err)
	assert.Equal(t, matrix.CodeB7to0, d)
	_, err = matrix.ParseDecodeMode(0x02)
	assert.ErrorIs(t, err, matrix.ErrDecodeMode)

	m, err := matrix.ParseShutdownMode(1)
	assert.NoError(t, err)
	assert.Equal(t, matrix.NormalOperation, m)
	_, err = matrix.ParseShutdownMode(2)
	assert.ErrorIs(t, err, matrix.ErrShutdownMode)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "Digit3", matrix.RegDigit3.String())
	assert.Equal(t, "DisplayTest", matrix.RegDisplayTest.String())
	assert.Equal(t, "Register(13)", matrix.Register(0xD).String())
	assert.Equal(t, "NoDecode", matrix.NoDecode.String())
	assert.Equal(t, "PowerDown", matrix.PowerDown.String())
	assert.Equal(t, "Intensity=0x0F", matrix.Command{Register: matrix.RegIntensity, Value: 0xF}.String())
}
