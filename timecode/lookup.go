package timecode

/*------------------------------------------------------------------
 *
 * Purpose:	Build the dense LFSR-state -> cycle-index lookup table
 *		for a chosen variant, and hand back a read-only handle
 *		that any number of Decoders can share.
 *
 * Description:	Starting from the variant's seed, each forward LFSR
 *		step is stored, keyed by the LFSR state that produced it,
 *		until Length cycles have been recorded. If the LFSR
 *		revisits a state before Length steps, the variant is
 *		misconfigured (LFSRWrappedError) - its claimed length
 *		exceeds the actual period of its seed/taps.
 *
 *---------------------------------------------------------------*/

const unknownCycle = -1

// Handle owns a built, read-only lookup table for one TimecodeDef. It
// is not modified after BuildLookup returns (until FreeLookup) and is
// safe to share by pointer across any number of Decoders.
type Handle struct {
	def   *TimecodeDef
	table []int32 // index: LFSR state, value: cycle index or unknownCycle
}

// BuildLookup locates name in the registry (compile-time or
// operator-loaded via LoadVariantConfig), builds its lookup table, and
// returns a shared handle. It fails with *UnknownVariantError if name
// is not registered, or *LFSRWrappedError if the variant's configured
// Length exceeds the LFSR's actual cycle.
func BuildLookup(name string) (*Handle, error) {
	def, ok := lookupVariant(name)
	if !ok {
		return nil, &UnknownVariantError{Name: name}
	}

	table := make([]int32, 1<<def.Bits)
	for i := range table {
		table[i] = unknownCycle
	}

	current := def.Seed
	for n := 0; n < def.Length; n++ {
		if table[current] != unknownCycle {
			return nil, &LFSRWrappedError{Name: name, AtState: current, AtCycle: n}
		}
		table[current] = int32(n)
		current = def.Forward(current)
	}

	// Verify the reverse LFSR is the true inverse of the forward one
	// at the seed, in both orders: the build loop above only exercises
	// Forward, so an unfaithful Reverse would otherwise go unnoticed.
	if def.Reverse(def.Forward(def.Seed)) != def.Seed || def.Forward(def.Reverse(def.Seed)) != def.Seed {
		return nil, &LFSRWrappedError{Name: name, AtState: def.Seed, AtCycle: 0}
	}

	return &Handle{def: def, table: table}, nil
}

// FreeLookup releases a handle's lookup table by dropping it from the
// handle itself, so every Decoder still bound to h stops resolving
// positions (Lookup reports ok=false for every state). The Go runtime
// reclaims the table once nothing else references it.
func FreeLookup(h *Handle) {
	if h == nil {
		return
	}
	h.table = nil
}

// Lookup resolves an LFSR state to its cycle index. ok is false for
// the unknown-state sentinel.
func (h *Handle) Lookup(state uint32) (cycle int, ok bool) {
	if int(state) >= len(h.table) {
		return 0, false
	}
	v := h.table[state]
	if v == unknownCycle {
		return 0, false
	}
	return int(v), true
}

// Safe returns the variant's safe-cycle boundary.
func (h *Handle) Safe() int { return h.def.Safe }

// Resolution returns the variant's wave cycles per second at nominal
// speed.
func (h *Handle) Resolution() uint32 { return h.def.Resolution }

// Bits returns B, the LFSR state width in bits.
func (h *Handle) Bits() uint { return h.def.Bits }

// Polarity returns the variant's polarity.
func (h *Handle) Polarity() Polarity { return h.def.Polarity }

// Seed returns the variant's initial LFSR state.
func (h *Handle) Seed() uint32 { return h.def.Seed }

// Name returns the variant's registry name.
func (h *Handle) Name() string { return h.def.Name }

// Length returns the variant's cycle count.
func (h *Handle) Length() int { return h.def.Length }

// Forward advances an LFSR state by one step in the playback-forward
// direction, exposed for callers that synthesize timecode audio rather
// than decode it.
func (h *Handle) Forward(state uint32) uint32 { return h.def.Forward(state) }

// Reverse advances an LFSR state by one step in the playback-reverse
// direction.
func (h *Handle) Reverse(state uint32) uint32 { return h.def.Reverse(state) }
