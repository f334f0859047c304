package same

import "errors"

// ErrMalformed reports that the header's grammar failed at a required
// position even after contextual repair.
var ErrMalformed = errors.New("same: malformed header")

// ErrLowConfidence reports that the originator or event code reconstructed
// with confidence below the trust threshold.
var ErrLowConfidence = errors.New("same: low confidence on required field")

// MinRequiredConfidence is the trust threshold for the originator and
// event-code fields; a reconstruction below it is rejected.
const MinRequiredConfidence = 3
