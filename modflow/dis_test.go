package modflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisPackage_ParseShape(t *testing.T) {
	p := &DisPackage{}
	raw := []byte("# Discretization file\n# another comment\n 3 10 15 2 4 2\nCONSTANT 100.0\n")

	require.NoError(t, p.parseShape(raw))
	assert.Equal(t, 3, p.Nlay())
	assert.Equal(t, 10, p.Nrow())
	assert.Equal(t, 15, p.Ncol())
	assert.Equal(t, 2, p.Nper())
}

func TestDisPackage_ParseShape_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"ShortHeader", " 3 10 15\n"},
		{"NonNumeric", " 3 ten 15 2\n"},
		{"NonPositive", " 3 0 15 2\n"},
		{"OnlyComments", "# nothing here\n"},
		{"Empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &DisPackage{}
			assert.Error(t, p.parseShape([]byte(tt.raw)))
		})
	}
}

func TestScanSaveUnits(t *testing.T) {
	raw := []byte(`HEAD PRINT FORMAT 0
HEAD SAVE UNIT 51
DRAWDOWN SAVE UNIT 52
PERIOD 1 STEP 1
  SAVE HEAD
  SAVE BUDGET
`)
	assert.Equal(t, []int{51, 52}, scanSaveUnits(raw))
}

func TestScanSaveUnits_IgnoresMalformed(t *testing.T) {
	raw := []byte("HEAD SAVE UNIT fifty\nHEAD SAVE UNIT -3\nSAVE UNIT\n")
	assert.Empty(t, scanSaveUnits(raw))
}
