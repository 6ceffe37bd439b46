package blocks

import (
	"fmt"
	"strings"
)

type Biome byte

const (
	Ocean          Biome = 0
	Plains         Biome = 1
	Desert         Biome = 2
	ExtremeHills   Biome = 3
	Forest         Biome = 4
	Taiga          Biome = 5
	Swampland      Biome = 6
	River          Biome = 7
	Hell           Biome = 8
	Sky            Biome = 9
	IcePlains      Biome = 12
	MushroomIsland Biome = 14
	Beach          Biome = 16
	Jungle         Biome = 21
	BirchForest    Biome = 27
	RoofedForest   Biome = 29
	Savanna        Biome = 35
	Mesa           Biome = 37
)

var biomeNames = map[Biome]string{
	Ocean:          "OCEAN",
	Plains:         "PLAINS",
	Desert:         "DESERT",
	ExtremeHills:   "EXTREME_HILLS",
	Forest:         "FOREST",
	Taiga:          "TAIGA",
	Swampland:      "SWAMPLAND",
	River:          "RIVER",
	Hell:           "HELL",
	Sky:            "SKY",
	IcePlains:      "ICE_PLAINS",
	MushroomIsland: "MUSHROOM_ISLAND",
	Beach:          "BEACH",
	Jungle:         "JUNGLE",
	BirchForest:    "BIRCH_FOREST",
	RoofedForest:   "ROOFED_FOREST",
	Savanna:        "SAVANNA",
	Mesa:           "MESA",
}

func (b Biome) String() string {
	if name, ok := biomeNames[b]; ok {
		return name
	}
	return fmt.Sprintf("BIOME_%d", byte(b))
}

func ParseBiome(s string) (Biome, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for b, n := range biomeNames {
		if n == name {
			return b, nil
		}
	}
	return Plains, fmt.Errorf("unknown biome %q", s)
}
