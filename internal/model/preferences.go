package model

// DefaultMinMatchScore is the threshold a fresh profile starts with.
const DefaultMinMatchScore = 40

// Preferences is the user's matching profile. Field names and JSON shape are
// the persisted form.
type Preferences struct {
	RoleKeywords       string   `json:"roleKeywords"`
	PreferredLocations []string `json:"preferredLocations" validate:"dive,oneof=Bangalore Hyderabad Chennai Pune Mumbai Noida Mysore"`
	PreferredModes     []string `json:"preferredMode"      validate:"dive,oneof=Remote Hybrid Onsite"`
	ExperienceLevel    string   `json:"experienceLevel"    validate:"omitempty,oneof=Fresher 0-1 1-3 3-5"`
	Skills             string   `json:"skills"`
	MinMatchScore      int      `json:"minMatchScore"`
}

// DefaultPreferences returns an empty profile with the default threshold.
func DefaultPreferences() Preferences {
	return Preferences{
		PreferredLocations: []string{},
		PreferredModes:     []string{},
		MinMatchScore:      DefaultMinMatchScore,
	}
}

// Normalized returns a copy with the threshold clamped to [0,100] and nil
// slices replaced by empty ones.
func (p Preferences) Normalized() Preferences {
	p.MinMatchScore = ClampScore(p.MinMatchScore)
	if p.PreferredLocations == nil {
		p.PreferredLocations = []string{}
	}
	if p.PreferredModes == nil {
		p.PreferredModes = []string{}
	}
	return p
}

// ClampScore bounds v to the score range [0,100].
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
