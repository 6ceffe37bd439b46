package blocks

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is an opaque block type: a material id plus a 4-bit data value.
type Type struct {
	Material Material
	Data     byte
}

var AirType = Type{}

// BlockRef is a host block that a Type can be rendered onto.
type BlockRef interface {
	SetType(t Type)
}

func Of(m Material) Type { return Type{Material: m} }

// FromState decodes a packed chunk state (id<<4 | data).
func FromState(state uint16) Type {
	return Type{Material: Material(state >> 4), Data: byte(state & 0xF)}
}

// State packs the type the way chunk sections store it.
func (t Type) State() uint16 {
	return uint16(t.Material)<<4 | uint16(t.Data&0xF)
}

func (t Type) IsZero() bool { return t.Material == Air && t.Data == 0 }

// WithMaterial copies the type keeping its data value.
func (t Type) WithMaterial(m Material) Type {
	return Type{Material: m, Data: t.Data}
}

func (t Type) Apply(ref BlockRef) {
	ref.SetType(t)
}

func (t Type) String() string {
	if t.Data == 0 {
		return t.Material.String()
	}
	return fmt.Sprintf("%s:%d", t.Material, t.Data)
}

// ParseType accepts "NAME", "NAME:data" or a numeric "id[:data]".
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Type{}, fmt.Errorf("empty block type")
	}
	name, dataStr, hasData := strings.Cut(s, ":")

	var t Type
	if id, err := strconv.ParseUint(name, 10, 12); err == nil {
		t.Material = Material(id)
	} else {
		m, err := ParseMaterial(name)
		if err != nil {
			return Type{}, err
		}
		t.Material = m
	}
	if hasData {
		d, err := strconv.ParseUint(dataStr, 10, 8)
		if err != nil || d > 15 {
			return Type{}, fmt.Errorf("block type %q: data must be in [0,15]", s)
		}
		t.Data = byte(d)
	}
	return t, nil
}

func MustParseType(s string) Type {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}
