package progress

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPNGRasterizerRendersChart(t *testing.T) {
	r, err := NewPNGRasterizer(14)
	require.NoError(t, err)

	out, err := r.Render(ChartTitle("asha"), []Bar{{Label: "Python", Value: 80}, {Label: "SQL", Value: 130}})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, chartWidth, img.Bounds().Dx())
	assert.Equal(t, chartHeight, img.Bounds().Dy())
}

func TestPNGRasterizerRejectsEmptySeries(t *testing.T) {
	r, err := NewPNGRasterizer(0)
	require.NoError(t, err)

	_, err = r.Render("empty", nil)
	assert.ErrorIs(t, err, ErrNoData)
}
