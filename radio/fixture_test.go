package radio

import (
	"testing"

	"github.com/nwralert/radiocache/cache"
	"github.com/nwralert/radiocache/dispatch"
	"github.com/nwralert/radiocache/geo"
	"github.com/nwralert/radiocache/message"
	"github.com/nwralert/radiocache/same"
)

func TestFixtureSource_DrivesCacheToShutdown(t *testing.T) {
	d := dispatch.NewDispatcher()
	loc := geo.Location{Lat: 35.73, Lon: -78.85, FIPS6: "037183"}

	alerts := []ScriptedAlert{
		{DueAt: 1000, Msg: message.SAMEAdapter{M: &same.Message{
			EventID: "E1", EventCode: "SVR", FIPS: []string{"037183"},
			StartTimeSec: 1000, EndTimeSec: 1300,
		}}},
	}

	src := NewFixtureSource(alerts, d)
	c := cache.New(loc, message.ByScoreAndTime, src.Now, d)
	d.Register(c)

	src.Run()

	if !d.ShuttingDown() {
		t.Fatal("expected FixtureSource.Run to end in shutdown")
	}
	if c.Score() != 0 {
		t.Fatalf("Score() after the alert aged out = %d, want 0", c.Score())
	}
}

func TestFixtureSource_EmptyScriptNeverShutsDown(t *testing.T) {
	d := dispatch.NewDispatcher()
	src := NewFixtureSource(nil, d)
	src.GenerateEvents()
	if d.ShuttingDown() {
		t.Fatal("an empty script should not emit shutdown (no last alert to measure grace against)")
	}
}
