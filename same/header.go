package same

import (
	"fmt"
	"strconv"
	"strings"
)

// Message is a fully parsed SAME header: the originator, event code, FIPS6
// area list, purge offset, issue time, and station id, plus the derived
// effective window.
type Message struct {
	Originator     string
	EventCode      string
	FIPS           []string
	PurgeMinutes   int
	IssueDayOfYear int
	IssueHour      int
	IssueMinute    int
	Station        string

	StartTimeSec int64
	EndTimeSec   int64
	EventID      string

	UnknownEventCode bool
}

// ParseHeader parses a reconstructed SAME header string into a Message.
// conf, if non-nil, must be the same length as s (the ConfidenceAverager's
// per-character confidence output); when supplied, the originator and
// event-code fields are checked against MinRequiredConfidence and
// ErrLowConfidence is returned if either fails.
func ParseHeader(s string, conf []int) (*Message, error) {
	raw := strings.TrimPrefix(s, "ZCZC")
	if !strings.HasPrefix(raw, "-") {
		return nil, fmt.Errorf("%w: missing leading '-'", ErrMalformed)
	}

	plusIdx := strings.IndexByte(raw, '+')
	if plusIdx < 0 {
		return nil, fmt.Errorf("%w: missing '+' before purge field", ErrMalformed)
	}
	head := strings.TrimPrefix(raw[:plusIdx], "-")
	tail := strings.TrimSuffix(raw[plusIdx+1:], "-")

	parts := strings.Split(head, "-")
	if len(parts) < 3 {
		return nil, fmt.Errorf("%w: expected ORG-EEE-FIPS..., got %q", ErrMalformed, head)
	}
	org := parts[0]
	evt := parts[1]
	fips := parts[2:]

	if len(org) != 3 {
		return nil, fmt.Errorf("%w: originator %q is not 3 chars", ErrMalformed, org)
	}
	if len(evt) != 3 {
		return nil, fmt.Errorf("%w: event code %q is not 3 chars", ErrMalformed, evt)
	}
	if len(fips) == 0 {
		return nil, fmt.Errorf("%w: FIPS list is empty", ErrMalformed)
	}
	seen := make(map[string]bool, len(fips))
	for _, f := range fips {
		if len(f) != 6 || !allDigits(f) {
			return nil, fmt.Errorf("%w: FIPS code %q is not 6 digits", ErrMalformed, f)
		}
		if seen[f] {
			return nil, fmt.Errorf("%w: duplicate FIPS code %q", ErrMalformed, f)
		}
		seen[f] = true
	}

	tailParts := strings.SplitN(tail, "-", 3)
	if len(tailParts) != 3 {
		return nil, fmt.Errorf("%w: expected TTTT-JJJHHMM-STATION, got %q", ErrMalformed, tail)
	}
	purgeStr, issueStr, station := tailParts[0], tailParts[1], tailParts[2]

	if len(purgeStr) != 4 || !allDigits(purgeStr) {
		return nil, fmt.Errorf("%w: purge field %q is not 4 digits", ErrMalformed, purgeStr)
	}
	if len(issueStr) != 7 || !allDigits(issueStr) {
		return nil, fmt.Errorf("%w: issue time %q is not 7 digits", ErrMalformed, issueStr)
	}
	if station == "" {
		return nil, fmt.Errorf("%w: empty station id", ErrMalformed)
	}

	if conf != nil {
		if err := checkRequiredConfidence(conf); err != nil {
			return nil, err
		}
	}

	purgeHH, _ := strconv.Atoi(purgeStr[0:2])
	purgeMM, _ := strconv.Atoi(purgeStr[2:4])
	doy, _ := strconv.Atoi(issueStr[0:3])
	hh, _ := strconv.Atoi(issueStr[3:5])
	mm, _ := strconv.Atoi(issueStr[5:7])

	start := int64(doy-1)*86400 + int64(hh)*3600 + int64(mm)*60
	end := start + int64(purgeHH*60+purgeMM)*60
	if end <= start {
		return nil, fmt.Errorf("%w: purge offset yields end_time <= start_time", ErrMalformed)
	}

	m := &Message{
		Originator:     org,
		EventCode:      evt,
		FIPS:           fips,
		PurgeMinutes:   purgeHH*60 + purgeMM,
		IssueDayOfYear: doy,
		IssueHour:      hh,
		IssueMinute:    mm,
		Station:        station,
		StartTimeSec:   start,
		EndTimeSec:     end,
	}
	if _, ok := EventCodes[evt]; !ok {
		m.UnknownEventCode = true
	}
	m.EventID = fmt.Sprintf("SAME:%s:%s:%s:%04d", station, evt, issueStr, m.PurgeMinutes)
	return m, nil
}

func checkRequiredConfidence(conf []int) error {
	if len(conf) <= posDash2 {
		return fmt.Errorf("%w: confidence array too short to cover originator/event fields", ErrMalformed)
	}
	for i := posOrg0; i < posOrg0+3; i++ {
		if conf[i] < MinRequiredConfidence {
			return ErrLowConfidence
		}
	}
	for i := posEvt0; i < posEvt0+3; i++ {
		if conf[i] < MinRequiredConfidence {
			return ErrLowConfidence
		}
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
