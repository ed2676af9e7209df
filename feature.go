package a64doc

// kindFeatures maps an instruction-class kind to the architecture feature it
// implies. An empty value means the kind implies no feature.
var kindFeatures = map[string]string{
	"general":   "",
	"system":    "",
	"float":     "FEAT_FP",
	"fpsimd":    "FEAT_FP",
	"advsimd":   "FEAT_AdvSIMD",
	"sve":       "FEAT_SVE",
	"sve2":      "FEAT_SVE2",
	"mortlach":  "FEAT_SME",
	"mortlach2": "FEAT_SME2",
}

// KindFeature looks up the feature implied by an instruction-class kind.
// known is false for kinds missing from the table.
func KindFeature(kind string) (feature string, known bool) {
	feature, known = kindFeatures[kind]
	return feature, known
}

// ResolveFeatures returns the features required by an encoding. The first
// source that applies wins:
//
//  1. the encoding's own arch variants
//  2. the owning class's arch variants
//  3. the encoding's instruction-class kind
//  4. the owning class's instruction-class kind
//
// A kind applies only if it is known; a known kind without a feature (e.g.
// "general") ends the chain with no features. The result is never nil.
func ResolveFeatures(own, class []ArchVariant, ownKind, classKind string) []string {
	if len(own) > 0 {
		return variantFeatures(own)
	}
	if len(class) > 0 {
		return variantFeatures(class)
	}
	for _, kind := range []string{ownKind, classKind} {
		if kind == "" {
			continue
		}
		if feature, ok := KindFeature(kind); ok {
			if feature == "" {
				return []string{}
			}
			return []string{feature}
		}
	}
	return []string{}
}

func variantFeatures(variants []ArchVariant) []string {
	features := make([]string, 0, len(variants))
	for _, v := range variants {
		if v.Feature != "" {
			features = append(features, v.Feature)
		}
	}
	return features
}
