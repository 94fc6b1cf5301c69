// Package wire defines the line-delimited JSON envelope exchanged between
// ring nodes and between a node and the orchestrator.
package wire

// Type discriminates the four message kinds the ring protocol exchanges.
type Type string

const (
	Out      Type = "OUT"
	In       Type = "IN"
	Announce Type = "ANNOUNCE"
	Report   Type = "REPORT"
)

// Dir is the directional label a message carries: which way around the
// ring it is travelling (or travelled).
type Dir string

const (
	Left  Dir = "L"
	Right Dir = "R"
)

// Message is the wire representation of every protocol and report message.
// Fields not meaningful to a given Type are left zero and omitted from the
// JSON encoding. Unknown fields on decode are ignored by encoding/json;
// unknown Type values are dropped by the caller (see node.Runtime).
type Message struct {
	Type        Type   `json:"type"`
	UID         int64  `json:"uid"`
	Phase       *int   `json:"phase,omitempty"`
	TTL         *int   `json:"ttl,omitempty"`
	Dir         Dir    `json:"dir,omitempty"`
	Winner      *int64 `json:"winner,omitempty"`
	Rounds      *int   `json:"rounds,omitempty"`
	Messages    *int64 `json:"messages,omitempty"`
	SenderIndex *int   `json:"senderIndex,omitempty"`
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

// NewOut builds a probe message. senderIndex is the originating node's ring
// index, used by the receiver to resolve which neighbor it arrived from.
func NewOut(uid int64, phase, ttl int, dir Dir, senderIndex int) Message {
	return Message{
		Type:        Out,
		UID:         uid,
		Phase:       intPtr(phase),
		TTL:         intPtr(ttl),
		Dir:         dir,
		SenderIndex: intPtr(senderIndex),
	}
}

// NewIn builds a reflected acknowledgement message.
func NewIn(uid int64, phase int, dir Dir, senderIndex int) Message {
	return Message{
		Type:        In,
		UID:         uid,
		Phase:       intPtr(phase),
		Dir:         dir,
		SenderIndex: intPtr(senderIndex),
	}
}

// NewAnnounce builds a winner-announcement message.
func NewAnnounce(uid, winner int64, dir Dir, senderIndex int) Message {
	return Message{
		Type:        Announce,
		UID:         uid,
		Winner:      int64Ptr(winner),
		Dir:         dir,
		SenderIndex: intPtr(senderIndex),
	}
}

// NewReport builds the single terminal message a node sends the
// orchestrator. winner is -1 when the node never observed a winner.
func NewReport(uid, winner int64, rounds int, messages int64) Message {
	return Message{
		Type:     Report,
		UID:      uid,
		Winner:   int64Ptr(winner),
		Rounds:   intPtr(rounds),
		Messages: int64Ptr(messages),
	}
}

// PhaseOrZero returns the Phase field, or 0 if absent.
func (m Message) PhaseOrZero() int {
	if m.Phase == nil {
		return 0
	}
	return *m.Phase
}

// TTLOrZero returns the TTL field, or 0 if absent.
func (m Message) TTLOrZero() int {
	if m.TTL == nil {
		return 0
	}
	return *m.TTL
}

// WinnerOrDefault returns the Winner field, or def if absent.
func (m Message) WinnerOrDefault(def int64) int64 {
	if m.Winner == nil {
		return def
	}
	return *m.Winner
}

// RoundsOrZero returns the Rounds field, or 0 if absent.
func (m Message) RoundsOrZero() int {
	if m.Rounds == nil {
		return 0
	}
	return *m.Rounds
}

// MessagesOrZero returns the Messages field, or 0 if absent.
func (m Message) MessagesOrZero() int64 {
	if m.Messages == nil {
		return 0
	}
	return *m.Messages
}

// SenderIndexOrDefault returns the SenderIndex field, or def if absent.
func (m Message) SenderIndexOrDefault(def int) int {
	if m.SenderIndex == nil {
		return def
	}
	return *m.SenderIndex
}

// IsReportComplete reports whether a REPORT message carries every field the
// orchestrator requires to accept it: non-null winner, rounds, and messages.
func (m Message) IsReportComplete() bool {
	return m.Type == Report && m.Winner != nil && m.Rounds != nil && m.Messages != nil
}
