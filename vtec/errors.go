package vtec

import "errors"

// ErrMalformed reports that a P-VTEC string failed grammar validation.
var ErrMalformed = errors.New("vtec: malformed P-VTEC string")

// ErrInvalidAction reports an action sequence that does not follow
// NEW -> (CON|EXT|EXB|EXA|UPG)* -> (CAN|EXP).
var ErrInvalidAction = errors.New("vtec: action violates NEW/CON.../CAN|EXP sequence")
