package world

import "time"

const (
	EventChunkGenerated  = "CHUNK_GENERATED"
	EventOwnerUpdated    = "OWNER_UPDATED"
	EventBiomeSet        = "BIOME_SET"
	EventSnapshotWritten = "SNAPSHOT_WRITTEN"
)

// Event is one generation log entry.
type Event struct {
	Time    string         `json:"time"`
	World   string         `json:"world"`
	Kind    string         `json:"kind"`
	Chunk   *[2]int        `json:"chunk,omitempty"`
	Plot    string         `json:"plot,omitempty"`
	Digest  string         `json:"digest,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

type EventSink interface {
	WriteEvent(ev Event) error
}

func (w *World) AddSink(s EventSink) {
	if s != nil {
		w.sinks = append(w.sinks, s)
	}
}

// Emit stamps the event with the world id and time and fans it out to every sink.
// Sink errors are dropped: logs are secondary to the world state.
func (w *World) Emit(ev Event) {
	if len(w.sinks) == 0 {
		return
	}
	ev.World = w.id
	if ev.Time == "" {
		ev.Time = w.now().UTC().Format(time.RFC3339Nano)
	}
	for _, s := range w.sinks {
		_ = s.WriteEvent(ev)
	}
}
