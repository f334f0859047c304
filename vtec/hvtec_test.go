package vtec

import "testing"

func TestParseHVTEC_FloodWarning(t *testing.T) {
	h, err := ParseHVTEC("/ANAW1.1.ER.130503T2100Z-130504T0300Z-130504T0900Z.NO/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.LocationID != "ANAW1" || h.Severity != "1" || h.ImmediateCause != "ER" || h.FloodRecord != "NO" {
		t.Fatalf("unexpected parse: %+v", h)
	}
	if h.BeginMissing || h.CrestMissing || h.EndMissing {
		t.Fatalf("no time should be missing: %+v", h)
	}
	if !(h.BeginTimeSec < h.CrestTimeSec && h.CrestTimeSec < h.EndTimeSec) {
		t.Fatalf("begin/crest/end not ascending: %d %d %d", h.BeginTimeSec, h.CrestTimeSec, h.EndTimeSec)
	}
}

// Areal flash flood products carry the placeholder gauge 00000 and leave
// every hydrologic time undetermined.
func TestParseHVTEC_ArealPlaceholder(t *testing.T) {
	h, err := ParseHVTEC("/00000.0.ER.000000T0000Z-000000T0000Z-000000T0000Z.OO/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.LocationID != "00000" || h.Severity != "0" {
		t.Fatalf("unexpected parse: %+v", h)
	}
	if !h.BeginMissing || !h.CrestMissing || !h.EndMissing {
		t.Fatalf("all times should be missing: %+v", h)
	}
}

func TestParseHVTEC_Malformed(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"field count", "/ANAW1.1.ER.NO/"},
		{"severity", "/ANAW1.9.ER.000000T0000Z-000000T0000Z-000000T0000Z.NO/"},
		{"immediate cause", "/ANAW1.1.ZZ.000000T0000Z-000000T0000Z-000000T0000Z.NO/"},
		{"flood record", "/ANAW1.1.ER.000000T0000Z-000000T0000Z-000000T0000Z.XX/"},
		{"window shape", "/ANAW1.1.ER.000000T0000Z-000000T0000Z.NO/"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := ParseHVTEC(c.in); err == nil {
				t.Fatalf("expected ErrMalformed for %q", c.in)
			}
		})
	}
}
