package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFeatures(t *testing.T) {
	java8 := NewLevelFeatures(8)
	assert.True(t, java8.Has(FeatureLambdas))
	assert.False(t, java8.Has(FeatureVarLocals))
	assert.False(t, java8.Has(FeatureRecords))

	java17 := NewLevelFeatures(17)
	assert.True(t, java17.Has(FeatureRecords))
	assert.True(t, java17.Has(FeatureSealedClasses))
	assert.False(t, java17.Has(FeatureRecordPatterns))

	latest := NewLevelFeatures(LatestLevel)
	for _, f := range AllFeatures() {
		if f == FeatureStringTemplates {
			assert.False(t, latest.Has(f), "string templates need an explicit override")
			continue
		}
		assert.True(t, latest.Has(f), "%s at level %d", f, LatestLevel)
	}
}

func TestFeatureOverrides(t *testing.T) {
	f := NewLevelFeatures(21)
	f.Set(FeatureRecords, false)
	f.Set(FeatureImplicitClasses, true)
	assert.False(t, f.Has(FeatureRecords))
	assert.True(t, f.Has(FeatureImplicitClasses))

	var zero LevelFeatures
	zero.Set(FeatureLambdas, true)
	assert.True(t, zero.Has(FeatureLambdas))
}

func TestParseFeature(t *testing.T) {
	f, err := ParseFeature("text-blocks")
	require.NoError(t, err)
	assert.Equal(t, FeatureTextBlocks, f)
	assert.Equal(t, LanguageLevel(15), SinceLevel(f))

	_, err = ParseFeature("goto")
	assert.ErrorContains(t, err, `unknown language feature "goto"`)
}

func TestAllFeaturesSorted(t *testing.T) {
	all := AllFeatures()
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.Less(t, string(all[i-1]), string(all[i]))
	}
}
