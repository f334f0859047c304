package message

import (
	"testing"

	"github.com/nwralert/radiocache/geo"
	"github.com/nwralert/radiocache/same"
	"github.com/nwralert/radiocache/vtec"
)

func activeSAMEGroup(eventCode string, start, end int64) *EventMessageGroup {
	g := NewEventMessageGroup("E-" + eventCode)
	m := SAMEAdapter{M: &same.Message{
		EventID: "E-" + eventCode, EventCode: eventCode,
		FIPS: []string{"037183"}, StartTimeSec: start, EndTimeSec: end,
	}}
	_ = g.AddMessage(m)
	return g
}

func TestByScoreAndTime_BasePriorities(t *testing.T) {
	loc := geo.Location{Lat: 35.73, Lon: -78.85, FIPS6: "037183"}
	cases := []struct {
		code string
		want int
	}{
		{"TOR", 40}, {"SVR", 30}, {"FFW", 30}, {"SVA", 20},
		{"FLW", 20}, {"FLA", 10}, {"RWT", 0},
		// Codes absent from the known table score 0 even when their
		// suffix looks like a warning or watch.
		{"ZZW", 0}, {"ZZA", 0}, {"ZZY", 0},
	}
	for _, c := range cases {
		g := activeSAMEGroup(c.code, 1000, 2000)
		got := ByScoreAndTime(g, loc, 1500)
		if got != c.want {
			t.Errorf("ByScoreAndTime(%s) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestByScoreAndTime_ExpiredIsZero(t *testing.T) {
	loc := geo.Location{Lat: 35.73, Lon: -78.85, FIPS6: "037183"}
	g := activeSAMEGroup("TOR", 1000, 2000)
	got := ByScoreAndTime(g, loc, 2000+DefaultGrace+1)
	if got != 0 {
		t.Errorf("expired group scored %d, want 0", got)
	}
}

// A header whose issue time is more than a day stale is admitted (so
// retroactive queries over the group still work) but scores 0.
func TestByScoreAndTime_StaleIssueTimeIsZero(t *testing.T) {
	loc := geo.Location{Lat: 35.73, Lon: -78.85, FIPS6: "037183"}
	g := activeSAMEGroup("TOR", 1000, 1000+pastIssueCutoff+7200)
	if got := ByScoreAndTime(g, loc, 1000+pastIssueCutoff+3600); got != 0 {
		t.Errorf("stale-issue group scored %d, want 0", got)
	}
	if got := ByScoreAndTime(g, loc, 1500); got != 40 {
		t.Errorf("fresh group scored %d, want 40", got)
	}
}

func activeVTECGroup(phenom, sig string, start, end int64) *EventMessageGroup {
	id := "KXXX." + phenom + "." + sig + ".0001"
	g := NewEventMessageGroup(id)
	m := VTECAdapter{M: &vtec.VTECMessage{
		EventID: id, Action: ActionNew, Phenomenon: phenom, Significance: sig,
		StartTimeSec: start, EndTimeSec: end,
	}}
	_ = g.AddMessage(m)
	return g
}

func TestDefaultVTECSort_BasePriorities(t *testing.T) {
	loc := geo.Location{Lat: 40.32, Lon: -102.72, FIPS6: "008125"}
	cases := []struct {
		phenom, sig string
		want        int
	}{
		{"TO", "W", 40}, {"SV", "W", 30}, {"FF", "W", 30},
		{"FA", "W", 25}, {"FL", "W", 10}, {"TO", "A", 25}, {"SV", "A", 25},
	}
	for _, c := range cases {
		g := activeVTECGroup(c.phenom, c.sig, 1000, 2000)
		got := DefaultVTECSort(g, loc, 1500)
		if got != c.want {
			t.Errorf("DefaultVTECSort(%s.%s) = %d, want %d", c.phenom, c.sig, got, c.want)
		}
	}
}

func TestDefaultVTECSort_DecaysPastEndWithinGrace(t *testing.T) {
	loc := geo.Location{Lat: 40.32, Lon: -102.72, FIPS6: "008125"}
	g := activeVTECGroup("TO", "W", 1000, 2000)

	atEnd := DefaultVTECSort(g, loc, 2000)
	if atEnd != 40 {
		t.Fatalf("score exactly at end = %d, want 40", atEnd)
	}
	midGrace := DefaultVTECSort(g, loc, 2000+150)
	if midGrace <= 0 || midGrace >= 40 {
		t.Fatalf("score mid-grace = %d, want strictly between 0 and 40", midGrace)
	}
	afterGrace := DefaultVTECSort(g, loc, 2000+DefaultGrace+1)
	if afterGrace != 0 {
		t.Fatalf("score past grace = %d, want 0", afterGrace)
	}
}

func TestDefaultVTECSort_Cancelled(t *testing.T) {
	loc := geo.Location{Lat: 40.32, Lon: -102.72, FIPS6: "008125"}
	g := activeVTECGroup("TO", "W", 1000, 2000)
	cancel := VTECAdapter{M: &vtec.VTECMessage{
		EventID: g.EventID(), Action: ActionCan, Phenomenon: "TO", Significance: "W",
		StartTimeSec: 1000, EndTimeSec: 2000, PublishedTimeSec: 1100,
	}}
	_ = g.AddMessage(cancel)
	if got := DefaultVTECSort(g, loc, 1500); got != 0 {
		t.Errorf("cancelled group scored %d, want 0", got)
	}
}
