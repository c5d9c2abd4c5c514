package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// LineKind names the Line variant of a LineRecord.
type LineKind string

const (
	KindDialogue LineKind = "dialogue"
	KindMutation LineKind = "mutation"
	KindComment  LineKind = "comment"
	KindGoto     LineKind = "goto"
	KindBlank    LineKind = "blank"
)

// LineRecord is the flat wire form of a Line.
// Exactly the fields of the line's variant are set. Kind is always written;
// records without it (older documents) have their variant inferred.
type LineRecord struct {
	ID         string   `json:"id" yaml:"id"`
	Kind       LineKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Comment    string   `json:"comment,omitempty" yaml:"comment,omitempty"`
	Condition  string   `json:"condition,omitempty" yaml:"condition,omitempty"`
	Character  string   `json:"character,omitempty" yaml:"character,omitempty"`
	Dialogue   string   `json:"dialogue,omitempty" yaml:"dialogue,omitempty"`
	Mutation   string   `json:"mutation,omitempty" yaml:"mutation,omitempty"`
	TargetName string   `json:"goToNodeName,omitempty" yaml:"goToNodeName,omitempty"`
	TargetID   string   `json:"goToNodeId,omitempty" yaml:"goToNodeId,omitempty"`
}

// NewLineRecord flattens a line.
func NewLineRecord(l Line) LineRecord {
	switch v := l.(type) {
	case Dialogue:
		return LineRecord{ID: v.ID, Kind: KindDialogue, Condition: v.Condition, Character: v.Character, Dialogue: v.Text}
	case Mutation:
		return LineRecord{ID: v.ID, Kind: KindMutation, Mutation: v.Expression}
	case Comment:
		return LineRecord{ID: v.ID, Kind: KindComment, Comment: v.Text}
	case Goto:
		return LineRecord{ID: v.ID, Kind: KindGoto, Condition: v.Condition, TargetName: v.TargetName, TargetID: v.TargetID}
	case Blank:
		return LineRecord{ID: v.ID, Kind: KindBlank}
	default:
		return LineRecord{}
	}
}

// Line builds the variant named by Kind, or inferred from the set fields
// when Kind is empty or unknown.
func (r LineRecord) Line() Line {
	switch r.Kind {
	case KindDialogue:
		return Dialogue{ID: r.ID, Condition: r.Condition, Character: r.Character, Text: r.Dialogue}
	case KindMutation:
		return Mutation{ID: r.ID, Expression: r.Mutation}
	case KindComment:
		return Comment{ID: r.ID, Text: r.Comment}
	case KindGoto:
		return Goto{ID: r.ID, Condition: r.Condition, TargetName: r.TargetName, TargetID: r.TargetID}
	case KindBlank:
		return Blank{ID: r.ID}
	}

	switch {
	case r.Mutation != "":
		return Mutation{ID: r.ID, Expression: r.Mutation}
	case r.Comment != "":
		return Comment{ID: r.ID, Text: r.Comment}
	case r.TargetName != "" || r.TargetID != "":
		return Goto{ID: r.ID, Condition: r.Condition, TargetName: r.TargetName, TargetID: r.TargetID}
	case r.Condition != "" || r.Character != "" || r.Dialogue != "":
		return Dialogue{ID: r.ID, Condition: r.Condition, Character: r.Character, Text: r.Dialogue}
	default:
		return Blank{ID: r.ID}
	}
}

// LineRecords flattens a slice of lines. A nil slice stays nil.
func LineRecords(lines []Line) []LineRecord {
	if lines == nil {
		return nil
	}
	out := make([]LineRecord, len(lines))
	for i, l := range lines {
		out[i] = NewLineRecord(l)
	}
	return out
}

// LinesFromRecords is the inverse of LineRecords.
func LinesFromRecords(records []LineRecord) []Line {
	if records == nil {
		return nil
	}
	out := make([]Line, len(records))
	for i, r := range records {
		out[i] = r.Line()
	}
	return out
}

// nodeRecord is the wire form of a Node.
type nodeRecord struct {
	ID        string       `json:"id" yaml:"id"`
	Name      string       `json:"name" yaml:"name"`
	UpdatedAt time.Time    `json:"updatedAt" yaml:"updatedAt"`
	Lines     []LineRecord `json:"lines" yaml:"lines"`
	Responses []Response   `json:"responses" yaml:"responses"`
}

func (n Node) record() nodeRecord {
	lines := LineRecords(n.Lines)
	if lines == nil {
		lines = []LineRecord{}
	}
	responses := n.Responses
	if responses == nil {
		responses = []Response{}
	}
	return nodeRecord{ID: n.ID, Name: n.Name, UpdatedAt: n.UpdatedAt, Lines: lines, Responses: responses}
}

func (n *Node) fromRecord(r nodeRecord) {
	n.ID = r.ID
	n.Name = r.Name
	n.UpdatedAt = r.UpdatedAt
	n.Lines = LinesFromRecords(r.Lines)
	n.Responses = r.Responses
}

// MarshalJSON serializes the node with flat line records.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.record())
}

// UnmarshalJSON deserializes a node, choosing the Line variant of each record.
func (n *Node) UnmarshalJSON(data []byte) error {
	if n == nil {
		return fmt.Errorf("domain: UnmarshalJSON on nil Node")
	}
	var r nodeRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	n.fromRecord(r)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (n Node) MarshalYAML() (any, error) {
	return n.record(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	var r nodeRecord
	if err := value.Decode(&r); err != nil {
		return err
	}
	n.fromRecord(r)
	return nil
}
