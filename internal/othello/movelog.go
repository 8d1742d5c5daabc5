package othello

// FlipRecord stores the color a cell had before a move changed it.
type FlipRecord struct {
	Point Point
	Prior Color
}

// moveEntry holds every cell changed by one speculative move, in the order they changed.
type moveEntry struct {
	flips []FlipRecord

	// turn is the side to move before the move was played
	turn Color
}

// moveLog is a strict stack of move entries.
type moveLog struct {
	entries []moveEntry
}

// push starts a new entry.
func (l *moveLog) push(turn Color) {
	l.entries = append(l.entries, moveEntry{
		flips: make([]FlipRecord, 0, 8),
		turn:  turn,
	})
}

// record appends a flip to the top entry. It does nothing when the log is empty.
func (l *moveLog) record(p Point, prior Color) {
	if len(l.entries) == 0 {
		return
	}

	top := &l.entries[len(l.entries)-1]
	top.flips = append(top.flips, FlipRecord{Point: p, Prior: prior})
}

// pop removes and returns the top entry.
func (l *moveLog) pop() (moveEntry, bool) {
	if len(l.entries) == 0 {
		return moveEntry{}, false
	}

	top := l.entries[len(l.entries)-1]
	l.entries = l.entries[:len(l.entries)-1]
	return top, true
}

func (l *moveLog) len() int {
	return len(l.entries)
}
