package same

// Copy is one noisy reception of a SAME header: the raw bytes the
// demodulator recovered and a per-byte confidence (0..3) for each.
// Confidence and Bytes must be the same length.
type Copy struct {
	Bytes      []byte
	Confidence []int
}

// ConfidenceAverager reconstructs a single SAME header from up to three
// noisy copies via a weighted bitwise majority vote, then runs a grammar
// repair pass over the assembled bytes. It never fails: a garbled
// reconstruction simply carries low confidence, and it is up to the
// caller (ParseHeader, or the cache) to reject it.
type ConfidenceAverager struct{}

// NewConfidenceAverager returns a ready-to-use averager. It holds no state;
// the type exists so callers have a place to hang future configuration
// (e.g. a custom grammar table) without breaking the call signature.
func NewConfidenceAverager() *ConfidenceAverager {
	return &ConfidenceAverager{}
}

// Average reconstructs the header and per-character confidence from the
// given copies. Copies of differing length are allowed; a position past
// the end of a shorter copy simply does not contribute a vote there.
func (a *ConfidenceAverager) Average(copies []Copy) ([]byte, []int) {
	n := 0
	for _, c := range copies {
		if len(c.Bytes) > n {
			n = len(c.Bytes)
		}
	}

	out := make([]byte, n)
	conf := make([]int, n)

	for i := 0; i < n; i++ {
		var bitWeight [8][2]int
		sumConf := 0
		contributed := false
		for _, c := range copies {
			if i >= len(c.Bytes) {
				continue
			}
			contributed = true
			b := c.Bytes[i]
			w := c.Confidence[i] + 1
			for bit := 0; bit < 8; bit++ {
				v := (b >> uint(bit)) & 1
				bitWeight[bit][v] += w
			}
			sumConf += c.Confidence[i]
		}
		if !contributed {
			continue
		}
		var assembled byte
		for bit := 0; bit < 8; bit++ {
			// Majority vote per bit, ties toward 0.
			if bitWeight[bit][1] > bitWeight[bit][0] {
				assembled |= 1 << uint(bit)
			}
		}
		out[i] = assembled
		conf[i] = clamp09(sumConf)
	}

	repairGrammar(out, conf)
	return out, conf
}

func clamp09(v int) int {
	if v < 0 {
		return 0
	}
	if v > 9 {
		return 9
	}
	return v
}

// repairGrammar applies the contextual repair pass described in the header
// grammar: fixed delimiter positions and the closed originator/event-code
// enumerations can be corrected from the unambiguous shape around them,
// with confidence raised to 9 (context-confirmed). Free-form positions
// (FIPS digits, purge, issue time, station id) have no unique repair
// target and are left as assembled, except for erased (0x00) bytes, which
// repairErasures fills with a low-confidence placeholder.
func repairGrammar(b []byte, conf []int) {
	if len(b) == 0 {
		return
	}

	// Position 0 is always '-'.
	fixByte(b, conf, posDash0, '-')

	// Originator occupies 1..3; repair via the closed Originators table
	// when exactly one entry matches the positions that already look
	// like letters.
	if len(b) > posDash1 {
		repairEnum(b, conf, posOrg0, 3, Originators)
		fixByte(b, conf, posDash1, '-')
	}

	// Event code occupies 5..7; repaired the same way against EventCodes.
	if len(b) > posDash2 {
		repairEnum(b, conf, posEvt0, 3, EventCodes)
		fixByte(b, conf, posDash2, '-')
		repairErasures(b, conf, posDash2+1)
	}
}

// repairErasures treats a byte every contributing copy assembled as 0x00
// as an erasure rather than a legitimate character: the demodulator's
// squelch marker carries no bit information at all (unlike ordinary
// noise, which still casts a vote), so the weighted bit vote above can
// only ever reassemble 0x00 there, never a real digit. The free-form tail
// (FIPS codes, purge offset, issue time, station id) has no enum table to
// repair against, so an erased position is filled with placeholder digit
// '1' and its confidence is capped below MinRequiredConfidence, marking
// it untrusted for any caller that checks confidence.
func repairErasures(b []byte, conf []int, start int) {
	for i := start; i < len(b); i++ {
		if b[i] != 0x00 {
			continue
		}
		b[i] = '1'
		if conf[i] >= MinRequiredConfidence {
			conf[i] = MinRequiredConfidence - 1
		}
	}
}

// fixByte corrects position p to want if it currently differs, raising
// its confidence to 9: a fixed delimiter's expected value is known
// outright, so context fully confirms it.
func fixByte(b []byte, conf []int, p int, want byte) {
	if p < 0 || p >= len(b) {
		return
	}
	if b[p] != want {
		b[p] = want
	}
	conf[p] = 9
}

// repairEnum corrects a width-wide window starting at start against a
// table of valid codes. If the window already matches a table entry
// exactly, confidence on the whole window is raised to 9 (context
// confirms what was already assembled correctly). If it doesn't match any
// entry, but exactly one table entry is consistent with the positions
// that are already letters (A-Z) in the window, the remaining
// (non-letter, presumably noise-corrupted) positions are overwritten from
// that entry and raised to 9. Otherwise the window is left untouched.
func repairEnum(b []byte, conf []int, start, width int, table map[string]string) {
	if start+width > len(b) {
		return
	}
	window := b[start : start+width]

	if _, ok := table[string(window)]; ok {
		for i := 0; i < width; i++ {
			conf[start+i] = 9
		}
		return
	}

	var match string
	matches := 0
	for code := range table {
		if len(code) != width {
			continue
		}
		ok := true
		for i := 0; i < width; i++ {
			c := window[i]
			if c >= 'A' && c <= 'Z' && c != code[i] {
				ok = false
				break
			}
		}
		if ok {
			matches++
			match = code
		}
	}
	if matches == 1 {
		for i := 0; i < width; i++ {
			b[start+i] = match[i]
			conf[start+i] = 9
		}
	}
}
