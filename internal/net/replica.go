package net

import (
	"fmt"
	"sync"

	"PixelBoard/internal/state"
)

// Replica is a read-only copy of a shared document rebuilt from host
// messages. Messages older than the last one applied are dropped, as are
// patches for a document the replica has no snapshot of.
type Replica struct {
	mu    sync.Mutex
	doc   *state.Document
	docID string
	clock Clock
}

func NewReplica() *Replica {
	// default dimensions are always valid
	doc, _ := state.New(state.DefaultWidth, state.DefaultHeight, state.White)
	return &Replica{doc: doc}
}

// Apply merges msg into the replica and reports whether it changed anything.
func (r *Replica) Apply(msg Message) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch msg.Type {
	case MsgSnapshot:
		if msg.Doc == r.docID && msg.Seq <= r.clock.Now() {
			return false, nil
		}
		if err := r.doc.Deserialize(msg.Project); err != nil {
			return false, err
		}
		r.docID = msg.Doc

	case MsgPatch:
		if msg.Doc != r.docID || msg.Seq <= r.clock.Now() {
			return false, nil
		}
		if err := r.doc.Apply(msg.Cells); err != nil {
			return false, err
		}

	default:
		return false, fmt.Errorf("%w: message type %q", state.ErrInvalidFormat, msg.Type)
	}
	r.clock.Observe(msg.Seq)
	return true, nil
}

// Seq is the sequence number of the last applied message.
func (r *Replica) Seq() uint64 {
	return r.clock.Now()
}

func (r *Replica) DocID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docID
}

// View runs fn with exclusive access to the replica document. fn must not
// keep the pointer.
func (r *Replica) View(fn func(doc *state.Document)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.doc)
}

// Snapshot encodes the current replica state as a snapshot message.
func (r *Replica) Snapshot() (Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg, err := snapshotMessage(r.doc, r.clock.Now())
	msg.Doc = r.docID
	return msg, err
}
