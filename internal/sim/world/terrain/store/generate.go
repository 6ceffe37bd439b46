package store

// GenerateChunk runs the bulk generator and then every populator, in order.
func (s *ChunkStore) GenerateChunk(ch *Chunk) {
	if s.Gen != nil {
		s.Gen.GenerateChunk(ch.CX, ch.CZ, ch)
	}
	for _, p := range s.Populators {
		p.Populate(ch)
	}
	ch.Populated = true
}
