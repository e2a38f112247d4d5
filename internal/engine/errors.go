package engine

import "github.com/rotisserie/eris"

// ErrUnknownArchetype is returned when a calculation is requested for an
// archetype id absent from the injected multiples table. The caller can
// recover by re-running classification; the engine never substitutes a
// default.
var ErrUnknownArchetype = eris.New("engine: unknown archetype")
