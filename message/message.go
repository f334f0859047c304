// Package message unifies SAME and VTEC alerts behind a single Message
// interface, and implements EventMessageGroup and the two pluggable
// scoring functions that operate on it.
package message

import (
	"github.com/nwralert/radiocache/geo"
	"github.com/nwralert/radiocache/same"
	"github.com/nwralert/radiocache/vtec"
)

// Action strings shared across both message kinds, so group logic never
// needs to type-switch to reason about the action-sequence invariant.
const (
	ActionNew = "NEW"
	ActionCon = "CON"
	ActionCan = "CAN"
	ActionExp = "EXP"
	ActionUpg = "UPG"
)

// Message is the trait both SAMEMessage and VTECMessage are adapted to,
// so EventMessageGroup and the scoring functions never need to know which
// wire format produced an alert.
type Message interface {
	EventID() string
	Start() int64
	End() int64
	Action() string
	FIPSList() []string
	Polygon() []geo.Point
	PriorityCategory() string
	// UnknownCategory reports that the message decoded validly but its
	// event code is not in the known table; such messages are admitted
	// at priority 0.
	UnknownCategory() bool
	Published() int64
}

// SAMEAdapter wraps a decoded same.Message as a Message. SAME carries no
// cancellation concept on the wire, so Action always reports ActionNew;
// "here" matching is FIPS-only (Polygon returns nil).
type SAMEAdapter struct {
	M *same.Message
}

func (a SAMEAdapter) EventID() string          { return a.M.EventID }
func (a SAMEAdapter) Start() int64             { return a.M.StartTimeSec }
func (a SAMEAdapter) End() int64               { return a.M.EndTimeSec }
func (a SAMEAdapter) Action() string           { return ActionNew }
func (a SAMEAdapter) FIPSList() []string       { return a.M.FIPS }
func (a SAMEAdapter) Polygon() []geo.Point     { return nil }
func (a SAMEAdapter) PriorityCategory() string { return a.M.EventCode }
func (a SAMEAdapter) UnknownCategory() bool    { return a.M.UnknownEventCode }
func (a SAMEAdapter) Published() int64         { return a.M.StartTimeSec }

// VTECAdapter wraps a parsed vtec.VTECMessage as a Message.
type VTECAdapter struct {
	M *vtec.VTECMessage
}

func (a VTECAdapter) EventID() string { return a.M.EventID }
func (a VTECAdapter) Start() int64    { return a.M.StartTimeSec }
func (a VTECAdapter) End() int64      { return a.M.EndTimeSec }
func (a VTECAdapter) Action() string  { return a.M.Action }
func (a VTECAdapter) FIPSList() []string {
	return a.M.UGC
}
func (a VTECAdapter) Polygon() []geo.Point { return a.M.Polygon }
func (a VTECAdapter) PriorityCategory() string {
	return a.M.Phenomenon + "." + a.M.Significance
}

// The VTEC phenomenon set is open; an untabled phenomenon already scores
// 0 through the scoring table, so nothing is flagged unknown here.
func (a VTECAdapter) UnknownCategory() bool { return false }
func (a VTECAdapter) Published() int64 {
	if a.M.PublishedTimeSec != 0 {
		return a.M.PublishedTimeSec
	}
	return a.M.StartTimeSec
}
