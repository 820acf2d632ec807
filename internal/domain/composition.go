package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChampionEntry is a unit as stored inside a composition record.
type ChampionEntry struct {
	Name    string   `json:"name" validate:"required"`
	Cost    int      `json:"cost" validate:"min=1,max=5"`
	Items   []string `json:"items" validate:"max=3"`
	IsCarry bool     `json:"isCarry"`
	Stars   int      `json:"stars" validate:"min=1,max=3"`
}

// SynergyEntry is a tag bonus frozen at save time. It is deliberately decoupled from
// the live catalog so catalog updates never rewrite historical rankings.
type SynergyEntry struct {
	Name     string `json:"name" validate:"required"`
	Tier     int    `json:"tier" validate:"min=1"`
	IsActive bool   `json:"isActive"`
}

// Position is a board placement. Hex is "row-col"; nothing is computed from it.
type Position struct {
	Champion string `json:"champion" yaml:"champion" toml:"champion" validate:"required"`
	Hex      string `json:"hex" yaml:"hex" toml:"hex" validate:"required"`
}

// Composition is the persisted, rank-assigned team guide.
type Composition struct {
	ID          uuid.UUID                          `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string                             `json:"name" gorm:"size:100;not null" validate:"required,notblank,max=100"`
	Description string                             `json:"description,omitempty" gorm:"size:500" validate:"max=500"`
	Champions   datatypes.JSONSlice[ChampionEntry] `json:"champions" gorm:"type:jsonb;not null" validate:"min=1,max=10,dive"`
	Synergies   datatypes.JSONSlice[SynergyEntry]  `json:"synergies" gorm:"type:jsonb;not null" validate:"min=1,dive"`
	Tier        Rank                               `json:"tier" gorm:"type:varchar(1);not null;index" validate:"required,rank"`
	Positioning datatypes.JSONSlice[Position]      `json:"positioning" gorm:"type:jsonb" validate:"dive"`
	Augments    datatypes.JSONSlice[string]        `json:"augments" gorm:"type:jsonb" validate:"dive,notblank"`
	Artifacts   datatypes.JSONSlice[string]        `json:"artifacts" gorm:"type:jsonb" validate:"dive,notblank"`
	VideoURL    string                             `json:"videoUrl,omitempty" validate:"omitempty,videourl"`
	TacterURL   string                             `json:"tacterUrl,omitempty" validate:"omitempty,tacterurl"`
	TFTSet      string                             `json:"tftSet,omitempty" gorm:"column:tft_set;index:idx_compositions_set_patch"`
	Patch       string                             `json:"patch,omitempty" gorm:"index:idx_compositions_set_patch"`
	Playstyle   string                             `json:"playstyle,omitempty"`
	Difficulty  Difficulty                         `json:"difficulty,omitempty" validate:"omitempty,difficulty"`
	IsActive    bool                               `json:"isActive" gorm:"not null;index"`
	CreatedAt   time.Time                          `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time                          `json:"updatedAt"`
}

// Carry returns the first lead unit, if any.
func (c *Composition) Carry() (ChampionEntry, bool) {
	for _, champ := range c.Champions {
		if champ.IsCarry {
			return champ, true
		}
	}
	return ChampionEntry{}, false
}

// ActiveSynergyNames returns the names of recorded synergies that are active.
func (c *Composition) ActiveSynergyNames() []string {
	names := make([]string, 0, len(c.Synergies))
	for _, s := range c.Synergies {
		if s.IsActive {
			names = append(names, s.Name)
		}
	}
	return names
}

// EmbedVideoURL converts a watch or short link into an embeddable player URL.
func (c *Composition) EmbedVideoURL() (string, bool) {
	if c.VideoURL == "" {
		return "", false
	}
	m := youtubeIDPattern.FindStringSubmatch(c.VideoURL)
	if len(m) < 2 || m[1] == "" {
		return "", false
	}
	return "https://www.youtube.com/embed/" + m[1], true
}

// Columns returns every mutable column keyed by database name, for full-record updates.
func (c *Composition) Columns() map[string]interface{} {
	return map[string]interface{}{
		"name":        c.Name,
		"description": c.Description,
		"champions":   c.Champions,
		"synergies":   c.Synergies,
		"tier":        c.Tier,
		"positioning": c.Positioning,
		"augments":    c.Augments,
		"artifacts":   c.Artifacts,
		"video_url":   c.VideoURL,
		"tacter_url":  c.TacterURL,
		"tft_set":     c.TFTSet,
		"patch":       c.Patch,
		"playstyle":   c.Playstyle,
		"difficulty":  c.Difficulty,
		"is_active":   c.IsActive,
	}
}

// CompositionPatch is a partial update. Nil fields are left untouched.
type CompositionPatch struct {
	Name        *string     `json:"name" validate:"omitnil,notblank,max=100"`
	Description *string     `json:"description" validate:"omitempty,max=500"`
	Tier        *Rank       `json:"tier" validate:"omitempty,rank"`
	Positioning *[]Position `json:"positioning" validate:"omitempty,dive"`
	Augments    *[]string   `json:"augments" validate:"omitnil,dive,notblank"`
	Artifacts   *[]string   `json:"artifacts" validate:"omitnil,dive,notblank"`
	VideoURL    *string     `json:"videoUrl" validate:"omitempty,videourl"`
	TacterURL   *string     `json:"tacterUrl" validate:"omitempty,tacterurl"`
	TFTSet      *string     `json:"tftSet"`
	Patch       *string     `json:"patch"`
	Playstyle   *string     `json:"playstyle"`
	Difficulty  *Difficulty `json:"difficulty" validate:"omitempty,difficulty"`
	IsActive    *bool       `json:"isActive"`
}

// IsEmpty reports whether the patch changes nothing.
func (p *CompositionPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Tier == nil && p.Positioning == nil &&
		p.Augments == nil && p.Artifacts == nil && p.VideoURL == nil && p.TacterURL == nil &&
		p.TFTSet == nil && p.Patch == nil && p.Playstyle == nil && p.Difficulty == nil && p.IsActive == nil
}

// ApplyTo copies the set fields onto c.
func (p *CompositionPatch) ApplyTo(c *Composition) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Tier != nil {
		c.Tier = *p.Tier
	}
	if p.Positioning != nil {
		c.Positioning = datatypes.NewJSONSlice(*p.Positioning)
	}
	if p.Augments != nil {
		c.Augments = datatypes.NewJSONSlice(*p.Augments)
	}
	if p.Artifacts != nil {
		c.Artifacts = datatypes.NewJSONSlice(*p.Artifacts)
	}
	if p.VideoURL != nil {
		c.VideoURL = *p.VideoURL
	}
	if p.TacterURL != nil {
		c.TacterURL = *p.TacterURL
	}
	if p.TFTSet != nil {
		c.TFTSet = *p.TFTSet
	}
	if p.Patch != nil {
		c.Patch = *p.Patch
	}
	if p.Playstyle != nil {
		c.Playstyle = *p.Playstyle
	}
	if p.Difficulty != nil {
		c.Difficulty = *p.Difficulty
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
}
