package parser

import (
	"fmt"
	"sort"
)

// LanguageLevel is a Java release number such as 8, 17 or 21.
type LanguageLevel int

const (
	MinLevel    LanguageLevel = 8
	LatestLevel LanguageLevel = 25
)

// Feature names a piece of syntax that only exists from some language level.
type Feature string

const (
	FeatureLambdas               Feature = "lambdas"
	FeatureModules               Feature = "modules"
	FeatureVarLocals             Feature = "var-locals"
	FeatureVarLambdaParams       Feature = "var-lambda-params"
	FeatureSwitchExpressions     Feature = "switch-expressions"
	FeatureTextBlocks            Feature = "text-blocks"
	FeatureRecords               Feature = "records"
	FeaturePatternInstanceof     Feature = "pattern-instanceof"
	FeatureSealedClasses         Feature = "sealed-classes"
	FeatureSwitchPatterns        Feature = "switch-patterns"
	FeatureRecordPatterns        Feature = "record-patterns"
	FeatureUnnamedVariables      Feature = "unnamed-variables"
	FeatureMarkdownDocComments   Feature = "markdown-doc-comments"
	FeatureImplicitClasses       Feature = "implicit-classes"
	FeatureModuleImports         Feature = "module-imports"
	FeatureStatementsBeforeSuper Feature = "statements-before-super"
	// String templates were withdrawn after two previews; they are only
	// available through an explicit override.
	FeatureStringTemplates Feature = "string-templates"
)

var featureLevels = map[Feature]LanguageLevel{
	FeatureLambdas:               8,
	FeatureModules:               9,
	FeatureVarLocals:             10,
	FeatureVarLambdaParams:       11,
	FeatureSwitchExpressions:     14,
	FeatureTextBlocks:            15,
	FeatureRecords:               16,
	FeaturePatternInstanceof:     16,
	FeatureSealedClasses:         17,
	FeatureSwitchPatterns:        21,
	FeatureRecordPatterns:        21,
	FeatureUnnamedVariables:      22,
	FeatureMarkdownDocComments:   23,
	FeatureImplicitClasses:       25,
	FeatureModuleImports:         25,
	FeatureStatementsBeforeSuper: 25,
	FeatureStringTemplates:       0,
}

// Features answers whether a piece of syntax is available.
type Features interface {
	Has(Feature) bool
}

// LevelFeatures derives features from a language level, with per-feature
// overrides.
type LevelFeatures struct {
	Level     LanguageLevel
	Overrides map[Feature]bool
}

func NewLevelFeatures(level LanguageLevel) *LevelFeatures {
	return &LevelFeatures{Level: level, Overrides: make(map[Feature]bool)}
}

func (f *LevelFeatures) Has(feature Feature) bool {
	if enabled, ok := f.Overrides[feature]; ok {
		return enabled
	}
	since, ok := featureLevels[feature]
	if !ok || since == 0 {
		return false
	}
	return f.Level >= since
}

// Set overrides a single feature.
func (f *LevelFeatures) Set(feature Feature, enabled bool) {
	if f.Overrides == nil {
		f.Overrides = make(map[Feature]bool)
	}
	f.Overrides[feature] = enabled
}

// ParseFeature validates a feature name.
func ParseFeature(name string) (Feature, error) {
	feature := Feature(name)
	if _, ok := featureLevels[feature]; !ok {
		return "", fmt.Errorf("unknown language feature %q", name)
	}
	return feature, nil
}

// AllFeatures lists every known feature in name order.
func AllFeatures() []Feature {
	all := make([]Feature, 0, len(featureLevels))
	for f := range featureLevels {
		all = append(all, f)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	return all
}

// SinceLevel returns the level a feature became standard, or 0.
func SinceLevel(feature Feature) LanguageLevel {
	return featureLevels[feature]
}
