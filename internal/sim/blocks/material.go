package blocks

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Material is a legacy numeric block id (1.8 id space).
type Material uint16

const (
	Air            Material = 0
	Stone          Material = 1
	Grass          Material = 2
	Dirt           Material = 3
	Cobblestone    Material = 4
	Planks         Material = 5
	Bedrock        Material = 7
	Sand           Material = 12
	Gravel         Material = 13
	Glass          Material = 20
	Sandstone      Material = 24
	Wool           Material = 35
	GoldBlock      Material = 41
	IronBlock      Material = 42
	DoubleStep     Material = 43
	Step           Material = 44
	Brick          Material = 45
	SignPost       Material = 63
	WallSign       Material = 68
	SmoothBrick    Material = 98
	NetherBrick    Material = 112
	WoodDoubleStep Material = 125
	WoodStep       Material = 126
	EmeraldBlock   Material = 133
	Skull          Material = 144
	RedstoneBlock  Material = 152
	QuartzBlock    Material = 155
	StainedClay    Material = 159
	Carpet         Material = 171
	HardClay       Material = 172
	CoalBlock      Material = 173
)

var materialNames = map[Material]string{
	Air:            "AIR",
	Stone:          "STONE",
	Grass:          "GRASS",
	Dirt:           "DIRT",
	Cobblestone:    "COBBLESTONE",
	Planks:         "WOOD",
	Bedrock:        "BEDROCK",
	Sand:           "SAND",
	Gravel:         "GRAVEL",
	Glass:          "GLASS",
	Sandstone:      "SANDSTONE",
	Wool:           "WOOL",
	GoldBlock:      "GOLD_BLOCK",
	IronBlock:      "IRON_BLOCK",
	DoubleStep:     "DOUBLE_STEP",
	Step:           "STEP",
	Brick:          "BRICK",
	SignPost:       "SIGN_POST",
	WallSign:       "WALL_SIGN",
	SmoothBrick:    "SMOOTH_BRICK",
	NetherBrick:    "NETHER_BRICK",
	WoodDoubleStep: "WOOD_DOUBLE_STEP",
	WoodStep:       "WOOD_STEP",
	EmeraldBlock:   "EMERALD_BLOCK",
	Skull:          "SKULL",
	RedstoneBlock:  "REDSTONE_BLOCK",
	QuartzBlock:    "QUARTZ_BLOCK",
	StainedClay:    "STAINED_CLAY",
	Carpet:         "CARPET",
	HardClay:       "HARD_CLAY",
	CoalBlock:      "COAL_BLOCK",
}

var materialsByName = func() map[string]Material {
	m := make(map[string]Material, len(materialNames))
	for id, name := range materialNames {
		m[name] = id
	}
	return m
}()

func (m Material) String() string {
	if name, ok := materialNames[m]; ok {
		return name
	}
	return strconv.Itoa(int(m))
}

// Doubled returns the full-height variant of a half-height material
// (carpet to wool, slabs to double slabs). Other materials map to themselves.
func (m Material) Doubled() Material {
	switch m {
	case Carpet:
		return Wool
	case Step:
		return DoubleStep
	case WoodStep:
		return WoodDoubleStep
	default:
		return m
	}
}

func ParseMaterial(s string) (Material, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if m, ok := materialsByName[name]; ok {
		return m, nil
	}
	return Air, fmt.Errorf("unknown material %q", s)
}

// MaterialNames lists every known material name in sorted order.
func MaterialNames() []string {
	out := make([]string, 0, len(materialsByName))
	for name := range materialsByName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
