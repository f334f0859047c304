package message

import (
	"strings"

	"github.com/nwralert/radiocache/geo"
	"github.com/nwralert/radiocache/same"
)

// DefaultGrace is the retention window, in seconds, past a group's
// end_time before it is considered EXPIRED.
const DefaultGrace = 300

// decayStepSeconds is the granularity of the post-end decay ramp for
// VTEC messages still buffered past their end time: the score drops a
// tenth of its base priority per step, reaching 0 exactly at DefaultGrace
// (10 steps).
const decayStepSeconds = 30

// ScoringFunc is a pluggable priority function: a pure mapping from
// (group, location, now) to an integer in [0, 100].
type ScoringFunc func(group *EventMessageGroup, loc geo.Location, now int64) int

// pastIssueCutoff is how stale a header's issue time may be before the
// message, while still admitted for retroactive queries, carries no
// priority.
const pastIssueCutoff = 24 * 3600

// ByScoreAndTime is the SAME scoring policy.
func ByScoreAndTime(group *EventMessageGroup, loc geo.Location, now int64) int {
	if group.State(now, DefaultGrace) != Active {
		return 0
	}
	m := group.latestNonCancelled()
	if now-m.Published() > pastIssueCutoff {
		return 0
	}
	return sameBasePriority(m.PriorityCategory())
}

func sameBasePriority(eventCode string) int {
	// Codes absent from the known table are admitted at priority 0; the
	// suffix fallback below is only for known codes without their own
	// row (WSW, HUW, FLW and kin).
	if _, known := same.EventCodes[eventCode]; !known {
		return 0
	}
	switch eventCode {
	case "TOR":
		return 40
	case "SVR", "FFW":
		return 30
	case "SVA":
		return 20
	case "RWT", "RMT", "DMO", "NPT":
		return 0
	}
	switch {
	case strings.HasSuffix(eventCode, "W"):
		return 20 // other warnings
	case strings.HasSuffix(eventCode, "A"), strings.HasSuffix(eventCode, "Y"):
		return 10 // other watches/advisories
	default:
		return 0 // statements and tests
	}
}

// DefaultVTECSort is the VTEC scoring policy.
func DefaultVTECSort(group *EventMessageGroup, loc geo.Location, now int64) int {
	state := group.State(now, DefaultGrace)
	if state == Cancelled || state == Expired {
		return 0
	}

	base := vtecBasePriority(group.latestNonCancelled().PriorityCategory())
	end := group.GetEndTimeSec()
	if now <= end {
		return base
	}

	steps := int((now - end) / decayStepSeconds)
	score := base - base*steps/10
	if score < 0 {
		score = 0
	}
	return score
}

func vtecBasePriority(phenomSig string) int {
	switch phenomSig {
	case "TO.W":
		return 40
	case "SV.W", "FF.W":
		return 30
	case "FA.W":
		return 25
	case "FL.W":
		return 10
	case "SV.A", "TO.A":
		return 25
	default:
		return 0
	}
}
