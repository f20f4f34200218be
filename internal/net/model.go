package net

import (
	"encoding/json"

	"PixelBoard/internal/state"
)

type MessageType string

const (
	MsgSnapshot MessageType = "snapshot" // a whole serialized project
	MsgPatch    MessageType = "patch"    // new colour of every cell an edit touched
)

// Message is one frame sent from the host to viewers.
type Message struct {
	Type    MessageType     `json:"type"`
	Doc     string          `json:"doc"`
	Seq     uint64          `json:"seq"`
	Project json.RawMessage `json:"project,omitempty"`
	Cells   []state.Cell    `json:"cells,omitempty"`
}

func snapshotMessage(doc *state.Document, seq uint64) (Message, error) {
	data, err := doc.Serialize()
	if err != nil {
		return Message{}, err
	}
	return Message{Type: MsgSnapshot, Doc: doc.ID(), Seq: seq, Project: data}, nil
}
