// Package radio declares the external-collaborator interfaces this
// module decodes against — the AFSK demodulator and the CAP/VTEC network
// feed — without implementing either. It also provides FixtureSource, a
// scripted source driving tests and cmd/nwrmonitor demos.
package radio

import (
	"context"

	"github.com/nwralert/radiocache/same"
)

// AFSKFeed is the raw demodulator collaborator: it yields up to three
// noisy copies of one SAME header's bytes and per-byte confidences each
// time the preamble repeats. No implementation lives in this module; a
// real feed would drive an SDR or a dedicated SAME receiver chip.
type AFSKFeed interface {
	NextCopies(ctx context.Context) ([]same.Copy, error)
}

// NetworkFeed is the CAP/VTEC network collaborator: it yields raw CAP XML
// bundles as they are retrieved. Parsing CAP XML into VTECMessage values
// is a caller concern (vtec.ParsePVTEC operates on the extracted P-VTEC
// string, not the envelope); retrieval itself is a collaborator concern.
type NetworkFeed interface {
	NextCAPBundle(ctx context.Context) ([]byte, error)
}
