package svj

import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

const baseline = "tree_SVJ_mZprime-3000_mDark-20_rinv-0.3_alpha-peak_MC2017"

func TestParseParam(t *testing.T) {
	name := "tree_SVJ_mMed-2000_mDark-20_rinv-0.3_alpha-low_MC2017"
	for param, want := range map[string]float64{"mMed": 2000, "mDark": 20, "rinv": 0.3, "alpha": 1} {
		v, err := ParseParam(name, param, true)
		require.NoError(t, err, param)
		assert.Equal(t, want, v, param)
	}
	v, err := ParseParam("tree_SVJ_mMed-800_alpha-high", "alpha", true)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	v, err = ParseParam("tree_QCD_Pt_600to800_MC2017", "mDark", false)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)

	_, err = ParseParam(name, "mZprime", true)
	assert.Error(t, err)
	_, err = ParseParam("tree_SVJ_mDark-x_MC2017", "mDark", true)
	assert.Error(t, err)
}

func TestParseMediator(t *testing.T) {
	v, err := ParseMediator(baseline, "mMed", true)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, v)
	_, err = ParseMediator("tree_SVJ_mDark-20", "mMed", true)
	assert.Error(t, err)
}

func TestMCType(t *testing.T) {
	assert.Equal(t, MCBaselineSignal, MCType(baseline, true, baseline))
	assert.Equal(t, MCOtherSignal, MCType("tree_SVJ_mMed-2000_mDark-20_rinv-0.3_alpha-low_MC2017", true, baseline))
	assert.Equal(t, MCQCD, MCType("tree_QCD_Pt_600to800_MC2017", false, baseline))
	assert.Equal(t, MCTTJets, MCType("tree_TTJets_Incl_MC2017", false, baseline))
}

func TestPTLabel(t *testing.T) {
	bins := []float64{200, 300, 400}
	assert.Equal(t, -1, PTLabel(150, bins))
	assert.Equal(t, 0, PTLabel(200, bins))
	assert.Equal(t, 0, PTLabel(299.9, bins))
	assert.Equal(t, 1, PTLabel(300, bins))
	assert.Equal(t, 2, PTLabel(1000, bins))
	assert.Equal(t, -1, PTLabel(5, nil))
}
