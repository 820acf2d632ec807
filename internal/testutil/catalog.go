package testutil

import (
	"github.com/snoody/tft-tierlist/internal/catalog"
	"github.com/snoody/tft-tierlist/internal/domain"
)

func thresholds(mins ...int) []domain.ActivationThreshold {
	out := make([]domain.ActivationThreshold, len(mins))
	for i, m := range mins {
		maxUnits := 25000
		if i+1 < len(mins) {
			maxUnits = mins[i+1] - 1
		}
		out[i] = domain.ActivationThreshold{MinUnits: m, MaxUnits: maxUnits, Style: i + 1}
	}
	return out
}

func testUnit(name string, cost int, tags ...string) domain.UnitDefinition {
	return domain.UnitDefinition{
		ID:            "TFT16_" + name,
		Name:          name,
		CharacterName: "TFT16_" + name,
		Cost:          cost,
		Tags:          tags,
	}
}

// TestCatalog returns a small synthetic catalog.
//
// Garen, Lux and Jinx share no tag, so together they activate nothing; adding
// Sett brings Juggernaut to its first threshold.
func TestCatalog() *catalog.Catalog {
	units := []domain.UnitDefinition{
		testUnit("Garen", 1, "Juggernaut"),
		testUnit("Lux", 2, "Sorcerer"),
		testUnit("Jinx", 3, "Gunslinger"),
		testUnit("Sett", 4, "Juggernaut", "Bastion"),
		testUnit("Braum", 1, "Bastion"),
		testUnit("Darius", 1, "Juggernaut", "Slayer"),
		testUnit("Tristana", 1, "Gunslinger"),
		testUnit("Ahri", 2, "Sorcerer", "Invoker"),
		testUnit("Lulu", 3, "Sorcerer", "Bastion"),
		testUnit("Zed", 3, "Slayer", "Gunslinger"),
		testUnit("Yasuo", 4, "Slayer"),
		testUnit("Kayle", 5, "Slayer", "Invoker"),
		{ID: "TFT16_ArmoryKey", Name: "Armory", Cost: 1, Tags: []string{"Bastion"}},
	}

	tags := []domain.TagDefinition{
		{ID: "TFT16_Juggernaut", Name: "Juggernaut", Thresholds: thresholds(2, 4, 6)},
		{ID: "TFT16_Sorcerer", Name: "Sorcerer", Thresholds: thresholds(2, 4, 6)},
		{ID: "TFT16_Gunslinger", Name: "Gunslinger", Thresholds: thresholds(2, 4)},
		{ID: "TFT16_Bastion", Name: "Bastion", Thresholds: thresholds(2, 4, 6)},
		{ID: "TFT16_Slayer", Name: "Slayer", Thresholds: thresholds(2, 4, 6)},
		{ID: "TFT16_Invoker", Name: "Invoker", Thresholds: thresholds(2, 4)},
	}

	items := []domain.ItemDefinition{
		{ID: "TFT_Item_BFSword", Name: "B.F. Sword"},
		{ID: "TFT_Item_RecurveBow", Name: "Recurve Bow"},
		{ID: "TFT_Item_NeedlesslyLargeRod", Name: "Needlessly Large Rod"},
		{ID: "TFT_Item_InfinityEdge", Name: "Infinity Edge", Composition: []string{"TFT_Item_BFSword", "TFT_Item_SparringGloves"}},
		{ID: "TFT_Item_GuinsoosRageblade", Name: "Guinsoo's Rageblade", Composition: []string{"TFT_Item_RecurveBow", "TFT_Item_NeedlesslyLargeRod"}},
		{ID: "TFT_Item_RabadonsDeathcap", Name: "Rabadon's Deathcap", Composition: []string{"TFT_Item_NeedlesslyLargeRod", "TFT_Item_NeedlesslyLargeRod"}},
	}

	return catalog.New("set16", units, tags, items)
}
