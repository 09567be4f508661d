package web

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplates_Embedded(t *testing.T) {
	tmpl, err := ParseTemplates(Embedded())
	require.NoError(t, err)
	assert.NotNil(t, tmpl.Lookup("index.html"))
}

func TestStatic_Embedded(t *testing.T) {
	static, err := Static(Embedded())
	require.NoError(t, err)

	data, err := fs.ReadFile(static, "style.css")
	require.NoError(t, err)
	assert.Contains(t, string(data), ".metric-card")
}

func TestFuncs(t *testing.T) {
	funcs := Funcs()
	lakhs := funcs["lakhs"].(func(float64) string)
	rate := funcs["rate"].(func(float64) string)

	assert.Equal(t, "252.56", lakhs(252.5599999))
	assert.Equal(t, "5534", rate(5533.74))
}
