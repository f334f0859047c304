// Package cache implements MessageCache, the indexed store of
// EventMessageGroups that partitions currently-effective alerts into
// "here" and "elsewhere" for a fixed receiver location and publishes a
// 0..100 priority score. MessageCache is only ever mutated from
// dispatcher-delivered handlers, so it carries no lock of its own.
package cache

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/nwralert/radiocache/dispatch"
	"github.com/nwralert/radiocache/geo"
	"github.com/nwralert/radiocache/message"
	gocache "github.com/patrickmn/go-cache"
)

// snapshot is the cache's last-published (active-here, active-elsewhere,
// score) triple, compared on every re-evaluation to decide whether to
// fire new_score/update_score.
type snapshot struct {
	here      map[string]bool
	elsewhere map[string]bool
	score     int
}

// MessageCache maintains one EventMessageGroup per event_id for a fixed
// receiver Location, re-evaluating the active here/elsewhere partition
// and the published score on every add_message and every tick.
type MessageCache struct {
	loc        geo.Location
	scoringFn  message.ScoringFunc
	clock      func() int64
	dispatcher *dispatch.Dispatcher

	groups      map[string]*message.EventMessageGroup
	insertOrder map[string]int
	nextOrder   int

	// recent is a TTL whitelist of message content already admitted
	// within the retention window, used to short-circuit re-evaluation
	// on a pure duplicate-content retransmit.
	recent *gocache.Cache

	last snapshot

	trace []string
}

// New constructs a MessageCache for a fixed receiver location, scoring
// policy, and clock. A nil clock or an empty location FIPS6 is a
// programmer error and aborts construction.
func New(loc geo.Location, scoringFn message.ScoringFunc, clock func() int64, d *dispatch.Dispatcher) *MessageCache {
	if clock == nil {
		panic("cache: clock function must not be nil")
	}
	if loc.FIPS6 == "" {
		panic("cache: location FIPS6 must not be empty")
	}
	return &MessageCache{
		loc:         loc,
		scoringFn:   scoringFn,
		clock:       clock,
		dispatcher:  d,
		groups:      make(map[string]*message.EventMessageGroup),
		insertOrder: make(map[string]int),
		recent:      gocache.New(message.DefaultGrace*time.Second, 10*time.Second),
	}
}

// Priority implements dispatch.Observer: the cache itself can be
// registered so NewMessageEvent/TickEvent reach it through the dispatcher.
func (c *MessageCache) Priority() int { return 100 }

// Handle implements dispatch.Observer.
func (c *MessageCache) Handle(ev dispatch.Event) {
	switch e := ev.(type) {
	case dispatch.NewMessageEvent:
		_ = c.AddMessage(e.Msg)
	case dispatch.TickEvent:
		c.reevaluate(nil)
	}
}

// AddMessage upserts m into the group keyed by its event id, then
// re-evaluates. A byte-identical retransmit (same event id, same content,
// seen within the retention window) is silently idempotent.
func (c *MessageCache) AddMessage(m message.Message) error {
	dupKey := fmt.Sprintf("%s|%s|%d|%d", m.EventID(), m.Action(), m.Start(), m.End())
	if _, found := c.recent.Get(dupKey); found {
		return nil
	}
	c.recent.SetDefault(dupKey, true)

	if m.UnknownCategory() {
		log.Printf("cache: unknown event code %q on %s, admitted at priority 0", m.PriorityCategory(), m.EventID())
	}

	g, ok := c.groups[m.EventID()]
	if !ok {
		g = message.NewEventMessageGroup(m.EventID())
		c.groups[m.EventID()] = g
		c.insertOrder[m.EventID()] = c.nextOrder
		c.nextOrder++
	}
	if err := g.AddMessage(m); err != nil {
		return err
	}
	c.reevaluate(m)
	return nil
}

// reevaluate snapshots the clock, repartitions every group into
// active-here/active-elsewhere/inactive, recomputes the score as the
// maximum over the active-here set, and fires new_score then
// update_score if anything changed. triggering may be nil (a
// tick-triggered re-evaluation with no specific message).
func (c *MessageCache) reevaluate(triggering message.Message) {
	now := c.clock()

	here := make(map[string]bool)
	elsewhere := make(map[string]bool)
	score := 0

	for id, g := range c.groups {
		if !c.isActiveAnywhere(g, now) {
			continue
		}
		if g.IsEffective(c.loc, c.loc.FIPS6, true, now) {
			here[id] = true
			// A scoring function returning outside [0,100] is a bad
			// plug-in, not a cache failure: its contribution defaults
			// to 0 for this tick.
			s := c.scoringFn(g, c.loc, now)
			if s < 0 || s > 100 {
				log.Printf("cache: scoring function returned %d for %s, outside 0..100, using 0 for this tick", s, id)
				s = 0
			}
			if s > score {
				score = s
			}
		} else {
			elsewhere[id] = true
		}
	}

	changed := !sameSet(here, c.last.here) || !sameSet(elsewhere, c.last.elsewhere) || score != c.last.score
	c.last = snapshot{here: here, elsewhere: elsewhere, score: score}

	if changed {
		c.recordTrace(now, c.sortedIDs(here, now), c.sortedIDs(elsewhere, now), score)
		if c.dispatcher != nil {
			c.dispatcher.Emit(dispatch.NewScoreEvent{Score: score, Msg: triggering})
			c.dispatcher.Emit(dispatch.UpdateScoreEvent{Msg: triggering})
		}
	}
}

// isActiveAnywhere reports whether g's window contains now and its latest
// action is not terminal, independent of location — the here/elsewhere
// split is a second, location-dependent test on top of this.
func (c *MessageCache) isActiveAnywhere(g *message.EventMessageGroup, now int64) bool {
	start, end := g.GetStartTimeSec(), g.GetEndTimeSec()
	if now < start || now > end {
		return false
	}
	latest := g.Latest()
	return latest.Action() != message.ActionCan && latest.Action() != message.ActionExp
}

func sameSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// GetActiveMessages returns each group whose effective predicate is true
// at the current clock (its latest version is reachable through Latest),
// filtered by here
// (true) or elsewhere (false), sorted by (-priority, end_time ascending,
// insertion_order ascending).
func (c *MessageCache) GetActiveMessages(here bool) []*message.EventMessageGroup {
	now := c.clock()
	var out []*message.EventMessageGroup
	for _, g := range c.groups {
		if !c.isActiveAnywhere(g, now) {
			continue
		}
		if g.IsEffective(c.loc, c.loc.FIPS6, true, now) != here {
			continue
		}
		out = append(out, g)
	}

	c.sortGroups(out, now)
	return out
}

// sortGroups orders groups by (-priority, end_time ascending, insertion
// order ascending), the ordering both GetActiveMessages and the debug
// trace display active messages in.
func (c *MessageCache) sortGroups(groups []*message.EventMessageGroup, now int64) {
	sort.SliceStable(groups, func(i, j int) bool {
		pi := c.scoringFn(groups[i], c.loc, now)
		pj := c.scoringFn(groups[j], c.loc, now)
		if pi != pj {
			return pi > pj
		}
		ei, ej := groups[i].GetEndTimeSec(), groups[j].GetEndTimeSec()
		if ei != ej {
			return ei < ej
		}
		return c.insertOrder[groups[i].EventID()] < c.insertOrder[groups[j].EventID()]
	})
}

// sortedIDs returns ids's event ids in the same order sortGroups would
// place their groups in, for the debug trace's here/elsewhere lists.
func (c *MessageCache) sortedIDs(ids map[string]bool, now int64) []string {
	groups := make([]*message.EventMessageGroup, 0, len(ids))
	for id := range ids {
		groups = append(groups, c.groups[id])
	}
	c.sortGroups(groups, now)
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.EventID()
	}
	return out
}

// Score returns the most recently published priority score without
// forcing a re-evaluation.
func (c *MessageCache) Score() int { return c.last.score }
