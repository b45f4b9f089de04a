package domain

// RuleSet is the per-category submission requirement: the set of file kinds a
// candidature must provide at least one of, plus optional tighter duration
// caps for time-based kinds.
type RuleSet struct {
	required map[FileKind]struct{}

	// Category-level caps in seconds; 0 means "no tighter cap than global".
	MaxVideoDuration int
	MaxAudioDuration int
}

// NewRuleSet builds a RuleSet from the given required kinds.
func NewRuleSet(required ...FileKind) RuleSet {
	rs := RuleSet{required: make(map[FileKind]struct{}, len(required))}
	for _, k := range required {
		rs.required[k] = struct{}{}
	}
	return rs
}

// WithDurationCaps returns a copy of the rule set carrying category duration caps.
func (rs RuleSet) WithDurationCaps(maxVideo, maxAudio int) RuleSet {
	rs.MaxVideoDuration = maxVideo
	rs.MaxAudioDuration = maxAudio
	return rs
}

// RequiredKinds returns the required kinds in stable display order.
func (rs RuleSet) RequiredKinds() []FileKind {
	var kinds []FileKind
	for _, k := range AllKinds {
		if _, ok := rs.required[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Requires reports whether the given kind is mandatory.
func (rs RuleSet) Requires(kind FileKind) bool {
	_, ok := rs.required[kind]
	return ok
}

// Missing computes the strict set difference required - provided. Duplicates
// within a kind are fine; a category requires "at least one" of each kind.
// The result is in stable display order; empty means the submission passes.
func (rs RuleSet) Missing(provided []FileKind) []FileKind {
	have := make(map[FileKind]struct{}, len(provided))
	for _, k := range provided {
		have[k] = struct{}{}
	}

	var missing []FileKind
	for _, k := range AllKinds {
		if _, req := rs.required[k]; !req {
			continue
		}
		if _, ok := have[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// MaxDurationSeconds returns the effective duration cap for a time-based kind:
// the tighter of the global ceiling and the category cap. Returns 0 for kinds
// without duration semantics.
func (rs RuleSet) MaxDurationSeconds(kind FileKind) int {
	global := kind.GlobalMaxDurationSeconds()
	if global == 0 {
		return 0
	}

	var category int
	switch kind {
	case KindVideo:
		category = rs.MaxVideoDuration
	case KindAudio:
		category = rs.MaxAudioDuration
	}

	if category > 0 && category < global {
		return category
	}
	return global
}
