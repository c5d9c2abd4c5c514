package domain

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLineRecord_PicksVariant(t *testing.T) {
	tests := []struct {
		name   string
		record LineRecord
		want   Line
	}{
		{"mutation", LineRecord{ID: "1", Kind: KindMutation, Mutation: "met=1"}, Mutation{ID: "1", Expression: "met=1"}},
		{"comment", LineRecord{ID: "2", Kind: KindComment, Comment: "note"}, Comment{ID: "2", Text: "note"}},
		{"goto by name", LineRecord{ID: "3", Kind: KindGoto, Condition: "x", TargetName: "Next"}, Goto{ID: "3", Condition: "x", TargetName: "Next"}},
		{"goto by id", LineRecord{ID: "4", Kind: KindGoto, TargetID: "n2"}, Goto{ID: "4", TargetID: "n2"}},
		{"dialogue", LineRecord{ID: "5", Kind: KindDialogue, Character: "Lilly", Dialogue: "Hi"}, Dialogue{ID: "5", Character: "Lilly", Text: "Hi"}},
		{"conditional narration", LineRecord{ID: "6", Kind: KindDialogue, Condition: "x"}, Dialogue{ID: "6", Condition: "x"}},
		{"blank", LineRecord{ID: "7", Kind: KindBlank}, Blank{ID: "7"}},
		{"empty comment", LineRecord{ID: "8", Kind: KindComment}, Comment{ID: "8"}},
		{"empty mutation", LineRecord{ID: "9", Kind: KindMutation}, Mutation{ID: "9"}},
		{"empty dialogue", LineRecord{ID: "10", Kind: KindDialogue}, Dialogue{ID: "10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.record.Line()
			if got != tt.want {
				t.Errorf("Line() = %#v, want %#v", got, tt.want)
			}
			if back := NewLineRecord(got); back != tt.record {
				t.Errorf("NewLineRecord() = %#v, want %#v", back, tt.record)
			}
		})
	}
}

func TestLineRecord_InfersVariantWithoutKind(t *testing.T) {
	tests := []struct {
		name   string
		record LineRecord
		want   Line
	}{
		{"mutation", LineRecord{ID: "1", Mutation: "met=1"}, Mutation{ID: "1", Expression: "met=1"}},
		{"comment", LineRecord{ID: "2", Comment: "note"}, Comment{ID: "2", Text: "note"}},
		{"goto by id", LineRecord{ID: "3", TargetID: "n2"}, Goto{ID: "3", TargetID: "n2"}},
		{"conditional narration", LineRecord{ID: "4", Condition: "x"}, Dialogue{ID: "4", Condition: "x"}},
		{"blank", LineRecord{ID: "5"}, Blank{ID: "5"}},
		{"unknown kind", LineRecord{ID: "6", Kind: "poem", Dialogue: "roses"}, Dialogue{ID: "6", Text: "roses"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.Line(); got != tt.want {
				t.Errorf("Line() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestNode_JSONKeepsEmptyVariants(t *testing.T) {
	node := Node{ID: "n", Name: "N", Lines: []Line{
		Comment{ID: "c"},
		Mutation{ID: "m"},
		Dialogue{ID: "d"},
		Blank{ID: "b"},
	}}

	out, err := json.Marshal(node)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var again Node
	if err := json.Unmarshal(out, &again); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for i, want := range node.Lines {
		if again.Lines[i] != want {
			t.Errorf("line %d = %#v, want %#v", i, again.Lines[i], want)
		}
	}

	data, err := yaml.Marshal(node)
	if err != nil {
		t.Fatalf("yaml Marshal failed: %v", err)
	}
	var fromYAML Node
	if err := yaml.Unmarshal(data, &fromYAML); err != nil {
		t.Fatalf("yaml Unmarshal failed: %v", err)
	}
	for i, want := range node.Lines {
		if fromYAML.Lines[i] != want {
			t.Errorf("yaml line %d = %#v, want %#v", i, fromYAML.Lines[i], want)
		}
	}
}

func TestNode_JSON(t *testing.T) {
	data := `{
		"id": "node1",
		"name": "Start",
		"lines": [
			{"id": "line1", "character": "Character", "dialogue": "Hello!"},
			{"id": "line2", "mutation": "has_met = true"},
			{"id": "line3", "goToNodeName": "END"}
		],
		"responses": [
			{"id": "response1", "prompt": "Bye", "goToNodeName": "END"}
		]
	}`

	var node Node
	if err := json.Unmarshal([]byte(data), &node); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if len(node.Lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(node.Lines))
	}
	if _, ok := node.Lines[1].(Mutation); !ok {
		t.Errorf("Expected Mutation, got %T", node.Lines[1])
	}
	if g, ok := node.Lines[2].(Goto); !ok || g.TargetName != EndTarget {
		t.Errorf("Expected Goto to END, got %#v", node.Lines[2])
	}
	if node.Responses[0].Prompt != "Bye" {
		t.Errorf("Expected prompt 'Bye', got %q", node.Responses[0].Prompt)
	}

	out, err := json.Marshal(node)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var again Node
	if err := json.Unmarshal(out, &again); err != nil {
		t.Fatalf("Unmarshal of marshalled node failed: %v", err)
	}
	if again.Lines[0] != node.Lines[0] {
		t.Errorf("Expected %#v, got %#v", node.Lines[0], again.Lines[0])
	}
}

func TestNode_YAML(t *testing.T) {
	data := `
savedWithVersion: 1.7
sequences:
  - id: seq1
    name: Example
    nodes:
      - id: node1
        name: Start
        lines:
          - id: line1
            comment: This is a comment
          - id: line2
        responses: []
`
	var project Project
	if err := yaml.Unmarshal([]byte(data), &project); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	nodes := project.Nodes()
	if len(nodes) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(nodes))
	}
	if c, ok := nodes[0].Lines[0].(Comment); !ok || c.Text != "This is a comment" {
		t.Errorf("Expected Comment, got %#v", nodes[0].Lines[0])
	}
	if _, ok := nodes[0].Lines[1].(Blank); !ok {
		t.Errorf("Expected Blank, got %#v", nodes[0].Lines[1])
	}
	if FindNode(nodes, "Start") == nil {
		t.Error("FindNode('Start') returned nil")
	}
}
