// Package vtec parses the P-VTEC strings NOAA embeds in CAP alert
// payloads into a typed VTECMessage, and carries optional best-effort CAP
// metadata alongside it.
package vtec

import (
	"fmt"
	"strings"
	"time"

	"github.com/nwralert/radiocache/geo"
)

// validActions is the closed set of P-VTEC action codes.
var validActions = map[string]bool{
	"NEW": true, "CON": true, "EXT": true, "EXB": true, "EXA": true,
	"UPG": true, "CAN": true, "EXP": true, "COR": true,
}

// terminalActions end a VTEC event's effective life.
var terminalActions = map[string]bool{"CAN": true, "EXP": true}

const pvtecTimeLayout = "060102T1504Z"
const pvtecUntilFurtherNotice = "000000T0000Z"

// VTECMessage is a single P-VTEC update, optionally decorated with the
// UGC zone/county list and polygon a CAP <area> element carries alongside
// it, and best-effort CAP metadata.
type VTECMessage struct {
	ProductClass string // O=operational, T=test, X=experimental, ...
	Action       string
	Office       string // 4-char originating office, e.g. KGLD
	Phenomenon   string // 2-char phenomenon, e.g. TO
	Significance string // 1-char: W, A, Y, S
	ETN          string // 4-digit event tracking number

	StartTimeSec       int64
	EndTimeSec         int64
	UntilFurtherNotice bool
	PublishedTimeSec   int64

	UGC     []string
	Polygon []geo.Point

	// HVTEC carries the hydrologic companion string flood products pair
	// with their P-VTEC; nil for everything else.
	HVTEC *HVTEC

	CAP *CAPMeta

	EventID string
}

// ParsePVTEC parses a bare P-VTEC string, e.g.
// "/O.NEW.KGLD.TO.W.0028.130503T2003Z-130503T2100Z/", into a VTECMessage.
// UGC, Polygon, CAP, and PublishedTimeSec are populated separately by the
// caller from the surrounding CAP envelope, not by this parser.
func ParsePVTEC(s string) (*VTECMessage, error) {
	trimmed := strings.Trim(strings.TrimSpace(s), "/")
	fields := strings.Split(trimmed, ".")
	if len(fields) != 7 {
		return nil, fmt.Errorf("%w: expected 7 dot-separated fields, got %d in %q", ErrMalformed, len(fields), s)
	}

	productClass, action, office, phenom, sig, etn, window := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5], fields[6]

	if len(productClass) != 1 {
		return nil, fmt.Errorf("%w: product class %q is not 1 char", ErrMalformed, productClass)
	}
	if !validActions[action] {
		return nil, fmt.Errorf("%w: unknown action %q", ErrMalformed, action)
	}
	if len(office) != 4 {
		return nil, fmt.Errorf("%w: office %q is not 4 chars", ErrMalformed, office)
	}
	if len(phenom) != 2 {
		return nil, fmt.Errorf("%w: phenomenon %q is not 2 chars", ErrMalformed, phenom)
	}
	if sig != "W" && sig != "A" && sig != "Y" && sig != "S" {
		return nil, fmt.Errorf("%w: significance %q is not one of W/A/Y/S", ErrMalformed, sig)
	}
	if len(etn) != 4 || !allDigits(etn) {
		return nil, fmt.Errorf("%w: ETN %q is not 4 digits", ErrMalformed, etn)
	}

	times := strings.SplitN(window, "-", 2)
	if len(times) != 2 {
		return nil, fmt.Errorf("%w: expected start-end window, got %q", ErrMalformed, window)
	}
	start, untilFurther, err := parsePVTECTime(times[0])
	if err != nil {
		return nil, fmt.Errorf("%w: start time: %s", ErrMalformed, err)
	}
	end, endOpen, err := parsePVTECTime(times[1])
	if err != nil {
		return nil, fmt.Errorf("%w: end time: %s", ErrMalformed, err)
	}

	m := &VTECMessage{
		ProductClass:       productClass,
		Action:             action,
		Office:             office,
		Phenomenon:         phenom,
		Significance:       sig,
		ETN:                etn,
		StartTimeSec:       start,
		EndTimeSec:         end,
		UntilFurtherNotice: endOpen,
	}
	_ = untilFurther // a "000000T..." start is unusual but not rejected; it just predates epoch-relevant comparisons
	// Watches (significance A) are issued nationally by SPC and relayed
	// unchanged by every office inside the watch area, so the office
	// prefix is dropped: the same watch arriving via two different
	// offices must collapse into one event_id, not fragment into two.
	// Warnings and the rest keep the office prefix since they are
	// genuinely office-local.
	if sig == "A" {
		m.EventID = fmt.Sprintf("%s.%s.%s", phenom, sig, etn)
	} else {
		m.EventID = fmt.Sprintf("%s.%s.%s.%s", office, phenom, sig, etn)
	}
	return m, nil
}

func parsePVTECTime(s string) (epoch int64, untilFurtherNotice bool, err error) {
	if s == pvtecUntilFurtherNotice {
		return 0, true, nil
	}
	t, err := time.Parse(pvtecTimeLayout, s)
	if err != nil {
		return 0, false, err
	}
	return t.Unix(), false, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsTerminalAction reports whether action ends an event's effective life
// (CAN or EXP).
func IsTerminalAction(action string) bool {
	return terminalActions[action]
}

// ValidateActionTransition enforces the action sequence
// NEW -> (CON|EXT|EXB|EXA|UPG)* -> (CAN|EXP). prev is "" for the
// first message in a group. COR is also accepted between NEW and the
// terminal action.
func ValidateActionTransition(prev, next string) error {
	if !validActions[next] {
		return fmt.Errorf("%w: %q", ErrMalformed, next)
	}
	if prev == "" {
		if next != "NEW" {
			return fmt.Errorf("%w: first action must be NEW, got %q", ErrInvalidAction, next)
		}
		return nil
	}
	if next == "NEW" {
		return fmt.Errorf("%w: NEW must be the first action, got it after %q", ErrInvalidAction, prev)
	}
	if terminalActions[prev] {
		return fmt.Errorf("%w: %q follows terminal action %q", ErrInvalidAction, next, prev)
	}
	return nil
}
