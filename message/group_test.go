package message

import (
	"testing"

	"github.com/nwralert/radiocache/geo"
	"github.com/nwralert/radiocache/vtec"
)

func TestEventMessageGroup_AddMessageDedup(t *testing.T) {
	g := NewEventMessageGroup("E1")
	m1 := VTECAdapter{M: &vtec.VTECMessage{EventID: "E1", Action: ActionNew, StartTimeSec: 100, EndTimeSec: 200}}
	if err := g.AddMessage(m1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddMessage(m1); err != nil {
		t.Fatalf("unexpected error on duplicate: %v", err)
	}
	if g.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (duplicate must be ignored)", g.Len())
	}
}

func TestEventMessageGroup_State(t *testing.T) {
	g := NewEventMessageGroup("E1")
	m := VTECAdapter{M: &vtec.VTECMessage{EventID: "E1", Action: ActionNew, StartTimeSec: 1000, EndTimeSec: 2000}}
	_ = g.AddMessage(m)

	if got := g.State(500, DefaultGrace); got != Pending {
		t.Errorf("State before start = %v, want PENDING", got)
	}
	if got := g.State(1500, DefaultGrace); got != Active {
		t.Errorf("State within window = %v, want ACTIVE", got)
	}
	if got := g.State(2000+DefaultGrace+1, DefaultGrace); got != Expired {
		t.Errorf("State past end+grace = %v, want EXPIRED", got)
	}

	cancel := VTECAdapter{M: &vtec.VTECMessage{EventID: "E1", Action: ActionCan, StartTimeSec: 1000, EndTimeSec: 2000, PublishedTimeSec: 1100}}
	_ = g.AddMessage(cancel)
	if got := g.State(1500, DefaultGrace); got != Cancelled {
		t.Errorf("State after CAN = %v, want CANCELLED", got)
	}
	// The window is still reported from the latest non-cancelled member.
	if g.GetStartTimeSec() != 1000 || g.GetEndTimeSec() != 2000 {
		t.Errorf("window after cancel = [%d,%d], want [1000,2000]", g.GetStartTimeSec(), g.GetEndTimeSec())
	}
}

// The receiver sits inside KGLD.TO.W.0028's polygon but its FIPS6 is
// not in the message's UGC list, so "here" flips with considerPolygon.
func TestEventMessageGroup_IsEffective_PolygonVsFIPS(t *testing.T) {
	poly := []geo.Point{
		{Lat: 40.50, Lon: -103.20},
		{Lat: 40.50, Lon: -102.20},
		{Lat: 40.00, Lon: -102.20},
		{Lat: 40.00, Lon: -103.20},
	}
	g := NewEventMessageGroup("KGLD.TO.W.0028")
	m := VTECAdapter{M: &vtec.VTECMessage{
		EventID: "KGLD.TO.W.0028", Action: ActionNew,
		StartTimeSec: 1000, EndTimeSec: 2000,
		UGC: []string{"008001"}, Polygon: poly,
	}}
	_ = g.AddMessage(m)

	loc := geo.Location{Lat: 40.321909, Lon: -102.718192, FIPS6: "008125"}

	if !g.IsEffective(loc, loc.FIPS6, true, 1500) {
		t.Error("expected effective with polygon considered")
	}
	if g.IsEffective(loc, loc.FIPS6, false, 1500) {
		t.Error("expected not effective with polygon disabled (FIPS not in UGC list)")
	}
}

func TestEventMessageGroup_AppliesToFIPS(t *testing.T) {
	g := NewEventMessageGroup("E2")
	m := VTECAdapter{M: &vtec.VTECMessage{EventID: "E2", Action: ActionNew, StartTimeSec: 1000, EndTimeSec: 2000, UGC: []string{"037183"}}}
	_ = g.AddMessage(m)
	if !g.AppliesToFIPS("137183") {
		t.Error("expected FIPS match ignoring part-of-county digit")
	}
	if g.AppliesToFIPS("999999") {
		t.Error("expected no FIPS match")
	}
}
