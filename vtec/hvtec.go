package vtec

import (
	"fmt"
	"strings"
)

// hvtecSeverities is the closed set of H-VTEC flood severity codes:
// N=none, 0=areal/flash flood, 1=minor, 2=moderate, 3=major, U=unknown.
var hvtecSeverities = map[string]bool{
	"N": true, "0": true, "1": true, "2": true, "3": true, "U": true,
}

// hvtecImmediateCauses is the closed set of H-VTEC immediate cause codes.
var hvtecImmediateCauses = map[string]bool{
	"ER": true, "SM": true, "RS": true, "DM": true, "IJ": true,
	"GO": true, "IC": true, "FS": true, "FT": true, "ET": true,
	"WT": true, "DR": true, "MC": true, "OT": true, "UU": true,
}

// hvtecFloodRecords is the closed set of flood record statuses:
// NO=not expected to exceed record, NR=near record or record expected,
// UU=unknown, OO=not applicable.
var hvtecFloodRecords = map[string]bool{"NO": true, "NR": true, "UU": true, "OO": true}

// HVTEC is the hydrologic companion string a flood product (FL.W, FF.W,
// FA.W and their watch/advisory kin) carries immediately after its
// P-VTEC: the gauge location, flood severity, immediate cause, the
// begin/crest/end times of the flood itself, and the flood record
// status. Scoring never reads it; it rides along on VTECMessage for
// display and downstream consumers.
type HVTEC struct {
	LocationID     string // 5-char NWSLI gauge id, or 00000 for areal products
	Severity       string
	ImmediateCause string
	FloodRecord    string

	BeginTimeSec int64
	CrestTimeSec int64
	EndTimeSec   int64

	// A 000000T0000Z field means the corresponding time is missing or
	// not yet determined; the matching *Missing flag is set and the
	// second count left at 0.
	BeginMissing bool
	CrestMissing bool
	EndMissing   bool
}

// ParseHVTEC parses a bare H-VTEC string, e.g.
// "/ANAW1.1.ER.130503T2100Z-130504T0300Z-130504T0900Z.NO/" (flood begin,
// crest, and end joined by '-' in the fourth dot-field), into an HVTEC.
func ParseHVTEC(s string) (*HVTEC, error) {
	trimmed := strings.Trim(strings.TrimSpace(s), "/")
	fields := strings.Split(trimmed, ".")
	if len(fields) != 5 {
		return nil, fmt.Errorf("%w: expected 5 dot-separated H-VTEC fields, got %d in %q", ErrMalformed, len(fields), s)
	}

	nwsli, severity, cause, window, record := fields[0], fields[1], fields[2], fields[3], fields[4]

	if len(nwsli) != 5 {
		return nil, fmt.Errorf("%w: NWSLI %q is not 5 chars", ErrMalformed, nwsli)
	}
	if !hvtecSeverities[severity] {
		return nil, fmt.Errorf("%w: unknown flood severity %q", ErrMalformed, severity)
	}
	if !hvtecImmediateCauses[cause] {
		return nil, fmt.Errorf("%w: unknown immediate cause %q", ErrMalformed, cause)
	}
	if !hvtecFloodRecords[record] {
		return nil, fmt.Errorf("%w: unknown flood record status %q", ErrMalformed, record)
	}

	times := strings.Split(window, "-")
	if len(times) != 3 {
		return nil, fmt.Errorf("%w: expected begin-crest-end window, got %q", ErrMalformed, window)
	}

	h := &HVTEC{
		LocationID:     nwsli,
		Severity:       severity,
		ImmediateCause: cause,
		FloodRecord:    record,
	}
	var err error
	if h.BeginTimeSec, h.BeginMissing, err = parsePVTECTime(times[0]); err != nil {
		return nil, fmt.Errorf("%w: flood begin time: %s", ErrMalformed, err)
	}
	if h.CrestTimeSec, h.CrestMissing, err = parsePVTECTime(times[1]); err != nil {
		return nil, fmt.Errorf("%w: flood crest time: %s", ErrMalformed, err)
	}
	if h.EndTimeSec, h.EndMissing, err = parsePVTECTime(times[2]); err != nil {
		return nil, fmt.Errorf("%w: flood end time: %s", ErrMalformed, err)
	}
	return h, nil
}
