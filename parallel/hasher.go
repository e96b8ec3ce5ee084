// Package parallel contains the bounded ForEach loop and an order independent
// Hasher used to fingerprint index sets filled in by concurrent goroutines.
package parallel

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"
	"sync"
)

// values stored per 64 byte block, the first two bytes are the fill mark
const perBlock = 15

// Hasher digests n uint32 values which may be put in any order. The digest
// depends only on the values and their positions.
type Hasher struct {
	mut  sync.Mutex
	sha  hash.Hash
	ate  int
	data [][64]byte
	sum  [32]byte
	done bool
}

// NewUint32Hasher creates a Hasher for n values.
func NewUint32Hasher(n int) *Hasher {
	return &Hasher{
		sha:  sha256.New(),
		data: make([][64]byte, (perBlock-1+n)/perBlock),
	}
}

func (h *Hasher) ready() bool {
	if h.ate >= len(h.data) {
		return false
	}
	return h.data[h.ate][0]|128 == 0xff && h.data[h.ate][1] == 0xff
}

func (h *Hasher) eat() {
	h.sha.Write(h.data[h.ate][:])
	h.ate++
}

// MustPutUint32 stores value at position n. Writing a position twice panics.
func (h *Hasher) MustPutUint32(n int, value uint32) {
	block := n / perBlock
	position := n % perBlock

	h.mut.Lock()
	defer h.mut.Unlock()

	if block < h.ate {
		panic("already consumed block")
	}
	mark := binary.BigEndian.Uint16(h.data[block][0:2])
	mask := uint16(1) << uint(position)
	if mark&mask != 0 {
		println(n, value)
		panic("duplicate write")
	}
	binary.BigEndian.PutUint32(h.data[block][4+4*position:], value)
	binary.BigEndian.PutUint16(h.data[block][0:2], mark|mask)

	for h.ready() {
		h.eat()
	}
}

// Sum consumes the remaining blocks and returns the digest. The Hasher
// cannot be written to afterwards.
func (h *Hasher) Sum() [32]byte {
	h.mut.Lock()
	defer h.mut.Unlock()
	if !h.done {
		for h.ate < len(h.data) {
			h.eat()
		}
		copy(h.sum[:], h.sha.Sum(nil))
		h.data = nil
		h.done = true
	}
	return h.sum
}
