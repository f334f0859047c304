// Command nwrmonitor is the terminal dashboard wiring the decoder, cache,
// and dispatcher packages together: a "status" view showing the current
// score and clock, and a "list" view showing the active-here alerts in
// priority order.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/awesome-gocui/gocui"
	"github.com/logrusorgru/aurora"

	"github.com/nwralert/radiocache/cache"
	"github.com/nwralert/radiocache/dispatch"
	"github.com/nwralert/radiocache/geo"
	"github.com/nwralert/radiocache/message"
	"github.com/nwralert/radiocache/radio"
	"github.com/nwralert/radiocache/same"
	"github.com/nwralert/radiocache/vtec"
)

// Context bundles the wired subsystems behind the gocui update callbacks.
type Context struct {
	cache *cache.MessageCache
	src   *radio.FixtureSource
}

func CreateContext(loc geo.Location, scoringFn message.ScoringFunc, d *dispatch.Dispatcher, alerts []radio.ScriptedAlert) *Context {
	src := radio.NewFixtureSource(alerts, d)
	c := cache.New(loc, scoringFn, src.Now, d)
	d.Register(c)
	return &Context{cache: c, src: src}
}

func (ctx *Context) update(g *gocui.Gui) error {
	v, err := g.View("status")
	if err != nil {
		return err
	}
	v.Clear()
	now := time.Unix(ctx.src.Now(), 0).UTC()
	fmt.Fprintf(v, "tick %s — score %s\n",
		aurora.Green(now.Format("002 15:04:05")).Bold(),
		aurora.Yellow(ctx.cache.Score()))

	v, err = g.View("list")
	if err != nil {
		return err
	}
	v.Clear()
	for _, grp := range ctx.cache.GetActiveMessages(true) {
		fmt.Fprintf(v, "%-20s  end=%d\n", grp.EventID(), grp.GetEndTimeSec())
		if va, ok := grp.Latest().(message.VTECAdapter); ok && va.M.CAP != nil {
			fmt.Fprintf(v, "  %s\n", aurora.Italic(va.M.CAP.Headline))
		}
	}
	return nil
}

func layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	if v, err := g.SetView("status", 0, 0, maxX-1, 2, 0); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = "nwrmonitor"
	}
	if v, err := g.SetView("list", 0, 3, maxX-1, maxY-1, 0); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = "here"
	}
	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

func main() {
	lat := flag.Float64("lat", 35.73, "receiver latitude")
	lon := flag.Float64("lon", -78.85, "receiver longitude")
	fips6 := flag.String("fips6", "037183", "receiver FIPS6 county code")
	flag.Parse()

	loc := geo.Location{Lat: *lat, Lon: *lon, FIPS6: *fips6}

	g, err := gocui.NewGui(gocui.OutputNormal, true)
	if err != nil {
		log.Panicln(err)
	}
	defer g.Close()

	g.SetManagerFunc(layout)
	if err := g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		log.Panicln(err)
	}

	d := dispatch.NewDispatcher()
	ctx := CreateContext(loc, message.ByScoreAndTime, d, demoAlerts(loc))

	go func() {
		for !d.ShuttingDown() {
			ctx.src.GenerateEvents()
			g.Update(ctx.update)
			time.Sleep(time.Second)
		}
	}()

	if err := g.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) {
		log.Panicln(err)
	}
}

// demoAlerts seeds a short storm sequence for the location so the
// dashboard has something to show without a real AFSK/network feed wired
// in.
func demoAlerts(loc geo.Location) []radio.ScriptedAlert {
	now := int64(0)
	warning := &same.Message{
		EventID: "SAME:KRAH/NWS:SVR:1232003:0045", EventCode: "SVR",
		FIPS: []string{loc.FIPS6}, StartTimeSec: now, EndTimeSec: now + 2700,
		Station: "KRAH/NWS",
	}

	cap, err := vtec.NewCAPMeta("Actual", "Alert", "Met", "Extreme", "Observed",
		"Immediate", "Shelter", "Tornado Warning issued near "+loc.FIPS6, "demo area")
	if err != nil {
		log.Panicln(err)
	}
	tornado := &vtec.VTECMessage{
		EventID: "KRAH.TO.W.0001", Action: message.ActionNew,
		Office: "KRAH", Phenomenon: "TO", Significance: "W", ETN: "0001",
		UGC: []string{loc.FIPS6}, StartTimeSec: now + 60, EndTimeSec: now + 3600,
		PublishedTimeSec: now + 60, CAP: cap,
	}

	return []radio.ScriptedAlert{
		{DueAt: now, Msg: message.SAMEAdapter{M: warning}},
		{DueAt: now + 60, Msg: message.VTECAdapter{M: tornado}},
	}
}
