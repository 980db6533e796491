package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRupiah(t *testing.T) {
	assert.Equal(t, "Rp 0", Rupiah(0))
	assert.Equal(t, "Rp 999", Rupiah(999))
	assert.Equal(t, "Rp 1.000", Rupiah(1000))
	assert.Equal(t, "Rp 250.000.000", Rupiah(250000000))
	assert.Equal(t, "-Rp 12.500", Rupiah(-12500))
}

func TestEngine_RendersLayoutAndPage(t *testing.T) {
	engine := NewEngine()
	require.NoError(t, engine.Load())

	var buf bytes.Buffer
	err := engine.Render(&buf, "pages/loading", map[string]any{"Title": "Memuat"}, "layouts/base")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<title>Memuat")
	assert.Contains(t, buf.String(), `role="status"`)
}

func TestStatic(t *testing.T) {
	f, err := Static().Open("app.js")
	require.NoError(t, err)
	defer f.Close()
}
