package timecode

// BitObserver is called once per bit emitted by the wave/bit state
// machine, in emission order. It is a pluggable callback rather than a
// raw file descriptor: attach one with Decoder.SetBitObserver to get a
// diagnostic "0/1 per bit" trace without the core owning any file I/O.
type BitObserver func(bit byte)

// SetBitObserver installs (or, with nil, removes) a per-bit observer.
// It is not called from multiple goroutines concurrently, matching
// Submit's single-threaded contract.
func (d *Decoder) SetBitObserver(obs BitObserver) {
	d.bitObserver = obs
}
