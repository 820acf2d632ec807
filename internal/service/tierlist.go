package service

import (
	"sort"
	"strings"

	"github.com/snoody/tft-tierlist/internal/domain"
)

// TierlistQuery filters the public tierlist. Empty Tiers means every rank;
// Synergy and Carry match exactly; Search matches the composition name,
// champion names or synergy names as a case-insensitive substring.
type TierlistQuery struct {
	Tiers   []domain.Rank
	Synergy string
	Carry   string
	Search  string
}

type TierGroup struct {
	Tier         domain.Rank           `json:"tier"`
	Compositions []*domain.Composition `json:"compositions"`
}

type Tierlist struct {
	Groups             []TierGroup `json:"groups"`
	Shown              int         `json:"shown"`
	Total              int         `json:"total"`
	AvailableSynergies []string    `json:"availableSynergies"`
	AvailableCarries   []string    `json:"availableCarries"`
}

// BuildTierlist filters comps and groups them S through D, keeping the input
// order inside each group. Facets are computed over every input composition so
// filter choices do not disappear as filters are applied.
func BuildTierlist(comps []*domain.Composition, q TierlistQuery) *Tierlist {
	tl := &Tierlist{
		Groups:             make([]TierGroup, len(domain.AllRanks)),
		Total:              len(comps),
		AvailableSynergies: []string{},
		AvailableCarries:   []string{},
	}
	for i, rank := range domain.AllRanks {
		tl.Groups[i] = TierGroup{Tier: rank, Compositions: []*domain.Composition{}}
	}

	synergies := make(map[string]struct{})
	carries := make(map[string]struct{})

	for _, c := range comps {
		for _, name := range c.ActiveSynergyNames() {
			synergies[name] = struct{}{}
		}
		if carry, ok := c.Carry(); ok {
			carries[carry.Name] = struct{}{}
		}

		if !q.matches(c) {
			continue
		}
		order := c.Tier.Order()
		if order >= len(tl.Groups) {
			continue
		}
		tl.Groups[order].Compositions = append(tl.Groups[order].Compositions, c)
		tl.Shown++
	}

	tl.AvailableSynergies = sortedKeys(synergies)
	tl.AvailableCarries = sortedKeys(carries)
	return tl
}

func (q TierlistQuery) matches(c *domain.Composition) bool {
	if len(q.Tiers) > 0 && !containsRank(q.Tiers, c.Tier) {
		return false
	}

	if q.Synergy != "" && !containsString(c.ActiveSynergyNames(), q.Synergy) {
		return false
	}

	if q.Carry != "" {
		carry, ok := c.Carry()
		if !ok || carry.Name != q.Carry {
			return false
		}
	}

	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(c.Name), needle) &&
			!anyContains(championNames(c), needle) &&
			!anyContains(synergyNames(c), needle) {
			return false
		}
	}

	return true
}

func championNames(c *domain.Composition) []string {
	names := make([]string, len(c.Champions))
	for i, ch := range c.Champions {
		names[i] = ch.Name
	}
	return names
}

func synergyNames(c *domain.Composition) []string {
	names := make([]string, len(c.Synergies))
	for i, s := range c.Synergies {
		names[i] = s.Name
	}
	return names
}

func anyContains(values []string, lowerNeedle string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), lowerNeedle) {
			return true
		}
	}
	return false
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func containsRank(ranks []domain.Rank, want domain.Rank) bool {
	for _, r := range ranks {
		if r == want {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
