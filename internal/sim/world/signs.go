package world

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"plotcraft.ai/internal/sim/blocks"
	"plotcraft.ai/internal/sim/world/logic/geom"
)

var ErrNotATileEntity = errors.New("block has no tile state")

type Sign struct {
	Pos   geom.BlockPos
	Lines [4]string
}

type Skull struct {
	Pos       geom.BlockPos
	Owner     string
	OwnerUUID *uuid.UUID
	Rotation  geom.Face
}

// SetSignLines writes the text of the sign at pos. The block must already be a sign.
func (w *World) SetSignLines(pos geom.BlockPos, lines [4]string) error {
	m := w.Block(pos.X, pos.Y, pos.Z).Material
	if m != blocks.WallSign && m != blocks.SignPost {
		return fmt.Errorf("sign at %s: %w (found %s)", pos, ErrNotATileEntity, m)
	}
	w.signs[pos] = &Sign{Pos: pos, Lines: lines}
	return nil
}

func (w *World) Sign(pos geom.BlockPos) (Sign, bool) {
	s := w.signs[pos]
	if s == nil {
		return Sign{}, false
	}
	return *s, true
}

// SetSkull writes the owner and rotation of the skull at pos. The block must already be a skull.
func (w *World) SetSkull(pos geom.BlockPos, s Skull) error {
	m := w.Block(pos.X, pos.Y, pos.Z).Material
	if m != blocks.Skull {
		return fmt.Errorf("skull at %s: %w (found %s)", pos, ErrNotATileEntity, m)
	}
	s.Pos = pos
	w.skulls[pos] = &s
	return nil
}

func (w *World) Skull(pos geom.BlockPos) (Skull, bool) {
	s := w.skulls[pos]
	if s == nil {
		return Skull{}, false
	}
	return *s, true
}
