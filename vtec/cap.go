package vtec

import "fmt"

// CAPMeta is optional, best-effort metadata carried over from a CAP
// envelope wrapping a VTEC message. It is descriptive only: no scoring
// function or cache logic reads it.
type CAPMeta struct {
	Status    string
	MsgType   string
	Category  string
	Severity  string
	Certainty string
	Urgency   string
	Response  string
	Headline  string
	AreaDesc  string
}

// Known CAP vocabulary values, reproduced for validation/display use by
// cmd/nwrmonitor; the cache and scoring functions never consult these.
var (
	CAPStatuses    = map[string]bool{"Actual": true, "Exercise": true, "System": true, "Test": true, "Draft": true}
	CAPMsgTypes    = map[string]bool{"Alert": true, "Update": true, "Cancel": true, "Ack": true, "Error": true}
	CAPCategories  = map[string]bool{"Met": true, "Safety": true, "Security": true, "Rescue": true, "Fire": true, "Health": true, "Env": true, "Transport": true, "Infra": true, "CBRNE": true, "Other": true}
	CAPSeverities  = map[string]bool{"Extreme": true, "Severe": true, "Moderate": true, "Minor": true, "Unknown": true}
	CAPCertainties = map[string]bool{"Observed": true, "Likely": true, "Possible": true, "Unlikely": true, "Unknown": true}
	CAPUrgencies   = map[string]bool{"Immediate": true, "Expected": true, "Future": true, "Past": true, "Unknown": true}
	CAPResponses   = map[string]bool{"Shelter": true, "Evacuate": true, "Prepare": true, "Execute": true, "Avoid": true, "Monitor": true, "Assess": true, "AllClear": true, "None": true}
)

// NewCAPMeta validates fields a caller has already extracted from a CAP
// <info> block against the known vocabularies and constructs a CAPMeta.
// headline and areaDesc are free text and pass through unchecked, the
// same split ParsePVTEC draws between closed-enum and free-form fields.
func NewCAPMeta(status, msgType, category, severity, certainty, urgency, response, headline, areaDesc string) (*CAPMeta, error) {
	if !CAPStatuses[status] {
		return nil, fmt.Errorf("%w: CAP status %q", ErrMalformed, status)
	}
	if !CAPMsgTypes[msgType] {
		return nil, fmt.Errorf("%w: CAP msgType %q", ErrMalformed, msgType)
	}
	if !CAPCategories[category] {
		return nil, fmt.Errorf("%w: CAP category %q", ErrMalformed, category)
	}
	if !CAPSeverities[severity] {
		return nil, fmt.Errorf("%w: CAP severity %q", ErrMalformed, severity)
	}
	if !CAPCertainties[certainty] {
		return nil, fmt.Errorf("%w: CAP certainty %q", ErrMalformed, certainty)
	}
	if !CAPUrgencies[urgency] {
		return nil, fmt.Errorf("%w: CAP urgency %q", ErrMalformed, urgency)
	}
	if !CAPResponses[response] {
		return nil, fmt.Errorf("%w: CAP response %q", ErrMalformed, response)
	}
	return &CAPMeta{
		Status: status, MsgType: msgType, Category: category, Severity: severity,
		Certainty: certainty, Urgency: urgency, Response: response,
		Headline: headline, AreaDesc: areaDesc,
	}, nil
}
