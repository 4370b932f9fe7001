package models

// TierLabel is a per-category skill tier code such as "HT1" or "LT5".
// The leading letters mark the High/Low sub-tier, the trailing digit the bucket.
type TierLabel string

// Category is one of the fixed combat disciplines a player is ranked in.
type Category string

// House is a player's cosmetic group affiliation.
type House string

// Player represents a ranked player.
// Points and Rank are derived and never read from input.
type Player struct {
	Name      string      `json:"name" yaml:"name"`
	StudentID string      `json:"studentId,omitempty" yaml:"studentId"`
	Form      string      `json:"form" yaml:"form"`
	House     House       `json:"house" yaml:"house"`
	Title     string      `json:"title" yaml:"title"`
	Tiers     []TierLabel `json:"tiers" yaml:"tiers"`
	Points    int         `json:"points" yaml:"-"`
	Rank      int         `json:"rank" yaml:"-"`
}

// Clone returns a copy of p that shares no backing arrays with it.
func (p Player) Clone() Player {
	if p.Tiers != nil {
		tiers := make([]TierLabel, len(p.Tiers))
		copy(tiers, p.Tiers)
		p.Tiers = tiers
	}
	return p
}

// TierAt returns the tier label for the category at idx, if any.
func (p Player) TierAt(idx int) (TierLabel, bool) {
	if idx < 0 || idx >= len(p.Tiers) {
		return "", false
	}
	return p.Tiers[idx], true
}

// TierList is the per-category grid: bucket number (1..5) to players.
type TierList struct {
	Category Category         `json:"category"`
	Buckets  map[int][]Player `json:"buckets"`
}

// Icon describes a category icon, either a font class or an image URL.
type Icon struct {
	Type  string `json:"type"` // "icon" or "img"
	Value string `json:"value"`
}

// Badge is one rendered tier badge on a player row or profile.
type Badge struct {
	Category Category  `json:"category"`
	Label    TierLabel `json:"label"`
	Class    string    `json:"class"`
	Icon     Icon      `json:"icon"`
}

// PlayerProfile represents extended player information for the detail view.
type PlayerProfile struct {
	Player
	StudentIDDisplay string  `json:"studentIdDisplay"`
	HouseColor       string  `json:"houseColor"`
	AvatarURL        string  `json:"avatarUrl"`
	SkinURL          string  `json:"skinUrl"`
	Badges           []Badge `json:"badges"`
}
