package net

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PixelBoard/internal/state"
)

var red = state.RGB(255, 0, 0)

func snapshotOf(t *testing.T, doc *state.Document, seq uint64) Message {
	t.Helper()
	msg, err := snapshotMessage(doc, seq)
	require.NoError(t, err)
	return msg
}

func TestClock(t *testing.T) {
	var c Clock
	assert.Equal(t, uint64(1), c.Tick())
	c.Observe(10)
	assert.Equal(t, uint64(11), c.Tick())
	c.Observe(3)
	assert.Equal(t, uint64(11), c.Now())
}

func TestReplicaAppliesInOrder(t *testing.T) {
	doc, err := state.New(4, 3, state.White)
	require.NoError(t, err)
	r := NewReplica()

	patch := Message{Type: MsgPatch, Doc: doc.ID(), Seq: 2, Cells: []state.Cell{{Point: state.Pt(1, 1), Color: red}}}
	changed, err := r.Apply(patch)
	require.NoError(t, err)
	assert.False(t, changed, "patch before any snapshot")

	changed, err = r.Apply(snapshotOf(t, doc, 1))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, doc.ID(), r.DocID())

	changed, err = r.Apply(patch)
	require.NoError(t, err)
	assert.True(t, changed)

	// duplicates and stale messages are dropped
	for _, msg := range []Message{patch, snapshotOf(t, doc, 2), {Type: MsgPatch, Doc: doc.ID(), Seq: 1}} {
		changed, err = r.Apply(msg)
		require.NoError(t, err)
		assert.False(t, changed)
	}
	assert.Equal(t, uint64(2), r.Seq())

	r.View(func(d *state.Document) {
		assert.Equal(t, 4, d.Width())
		assert.Equal(t, map[state.Point]state.Color{{X: 1, Y: 1}: red}, d.Pixels())
	})
}

func TestReplicaRejectsBadMessages(t *testing.T) {
	r := NewReplica()
	_, err := r.Apply(Message{Type: "hello", Seq: 1})
	assert.ErrorIs(t, err, state.ErrInvalidFormat)

	_, err = r.Apply(Message{Type: MsgSnapshot, Doc: "x", Seq: 1, Project: []byte(`{"width": 0}`)})
	assert.Error(t, err)
	assert.Equal(t, uint64(0), r.Seq())
	assert.Equal(t, "", r.DocID())
}

func TestReplicaSnapshotRoundTrip(t *testing.T) {
	doc, err := state.New(2, 2, state.Black)
	require.NoError(t, err)
	_, _ = doc.SetPixel(0, 1, red)

	a := NewReplica()
	_, err = a.Apply(snapshotOf(t, doc, 5))
	require.NoError(t, err)
	snap, err := a.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, doc.ID(), snap.Doc)
	assert.Equal(t, uint64(5), snap.Seq)

	b := NewReplica()
	_, err = b.Apply(snap)
	require.NoError(t, err)
	b.View(func(d *state.Document) {
		assert.Equal(t, state.Black, d.Background())
		assert.Equal(t, doc.Pixels(), d.Pixels())
	})
}

func TestShareLinks(t *testing.T) {
	link := ShareLink("192.168.1.4", 8888)
	assert.Equal(t, "pixelboard://192.168.1.4:8888", link)
	assert.True(t, IsShareLink(link))

	addr, err := ParseShareLink(link + "/")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.4:8888", addr)

	for _, bad := range []string{"http://a:1", "pixelboard://nohost", "pixelboard://:80", "pixelboard://a:0", "pixelboard://a:x"} {
		_, err := ParseShareLink(bad)
		assert.Error(t, err, bad)
	}
	assert.Equal(t, "pixelboard://10.0.0.2:9000", Peer{Addr: "10.0.0.2:9000"}.Link())
}
