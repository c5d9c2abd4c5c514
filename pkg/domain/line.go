package domain

// Line is one entry of a node's dialogue script.
// The set of implementations is closed: Dialogue, Mutation, Comment, Goto and Blank.
type Line interface {
	// LineID returns the identifier of the line.
	LineID() string
	isLine()
}

// Dialogue is a spoken (or narrated) line.
// An empty Character means narration.
type Dialogue struct {
	ID        string
	Condition string
	Character string
	Text      string
}

// Mutation changes game state when reached, e.g. "[do met=1]".
type Mutation struct {
	ID         string
	Expression string
}

// Comment is an author note that is never shown to the player.
type Comment struct {
	ID   string
	Text string
}

// Goto jumps to another node, e.g. "[if x] -> Somewhere".
type Goto struct {
	ID         string
	Condition  string
	TargetName string
	TargetID   string
}

// Blank is an empty line kept so the editor text round-trips.
type Blank struct {
	ID string
}

func (l Dialogue) LineID() string { return l.ID }
func (l Mutation) LineID() string { return l.ID }
func (l Comment) LineID() string  { return l.ID }
func (l Goto) LineID() string     { return l.ID }
func (l Blank) LineID() string    { return l.ID }

func (Dialogue) isLine() {}
func (Mutation) isLine() {}
func (Comment) isLine()  {}
func (Goto) isLine()     {}
func (Blank) isLine()    {}

// LineTarget returns the target of a Goto line. Other variants have none.
func LineTarget(l Line) (name, id string, ok bool) {
	if g, isGoto := l.(Goto); isGoto {
		return g.TargetName, g.TargetID, true
	}
	return "", "", false
}
