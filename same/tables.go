// Package same implements the SAME (Specific Area Message Encoding) header
// grammar used by NOAA Weather Radio: the bitwise confidence averager that
// reconstructs a single header from up to three noisy AFSK copies, and the
// parser that turns the reconstructed string into a typed Message.
package same

// Originators is the closed set of valid SAME originator codes.
var Originators = map[string]string{
	"EAS": "Broadcast station or cable system",
	"CIV": "Civil authorities",
	"WXR": "National Weather Service",
	"PEP": "Primary Entry Point System",
}

// EventCodes maps a SAME event code to its descriptive name. This table
// mirrors the event codes NWS actually transmits; codes not present here
// are still accepted but score 0, and the cache logs a warning when one
// is admitted.
var EventCodes = map[string]string{
	"TOR": "Tornado Warning",
	"TOA": "Tornado Watch",
	"SVR": "Severe Thunderstorm Warning",
	"SVA": "Severe Thunderstorm Watch",
	"FFW": "Flash Flood Warning",
	"FFA": "Flash Flood Watch",
	"FFS": "Flash Flood Statement",
	"FLW": "Flood Warning",
	"FLA": "Flood Watch",
	"FLS": "Flood Statement",
	"SVS": "Severe Weather Statement",
	"WSW": "Winter Storm Warning",
	"WSA": "Winter Storm Watch",
	"HUW": "Hurricane Warning",
	"HUA": "Hurricane Watch",
	"RWT": "Required Weekly Test",
	"RMT": "Required Monthly Test",
	"DMO": "Practice/Demo Warning",
	"NPT": "National Periodic Test",
}

// Fixed-grammar byte offsets within a header once the leading '-' is known to be at offset 0: offsets 4 and 8
// are always hyphens (after the 3-char originator and 3-char event code).
const (
	posDash0 = 0
	posOrg0  = 1
	posDash1 = 4
	posEvt0  = 5
	posDash2 = 8
)
