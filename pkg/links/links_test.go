package links

import (
	"slices"
	"testing"

	"github.com/aretw0/parley/pkg/domain"
)

func TestIncoming(t *testing.T) {
	target := domain.Node{ID: "target", Name: "Target Node"}
	nodes := []domain.Node{
		target,
		{
			ID:   "link1",
			Name: "link1",
			Lines: []domain.Line{
				domain.Goto{ID: "line1", TargetID: "target"},
			},
			Responses: []domain.Response{
				{ID: "response1", TargetID: "nothing"},
				{ID: "response2", TargetID: "target"},
			},
		},
		{
			ID:        "link2",
			Name:      "link2",
			Responses: []domain.Response{{ID: "response3", TargetID: "target"}},
		},
		{
			ID:        "no_link",
			Name:      "no_link",
			Responses: []domain.Response{{ID: "response4", TargetID: "nothing"}},
		},
	}

	if got := Incoming(nil, nodes); len(got) != 0 {
		t.Errorf("Incoming(nil) = %v, want empty", got)
	}
	if got := Incoming(&target, nil); got == nil || len(got) != 0 {
		t.Errorf("Incoming(target, nil) = %#v, want empty slice", got)
	}

	want := []string{"line1", "response2", "response3"}
	if got := Incoming(&target, nodes); !slices.Equal(got, want) {
		t.Errorf("Incoming() = %v, want %v", got, want)
	}
}

func TestOutgoing(t *testing.T) {
	if got := slices.Collect(Outgoing(nil)); len(got) != 0 {
		t.Errorf("Outgoing(nil) = %v, want empty", got)
	}

	node := domain.Node{
		ID:   "node1",
		Name: "node1",
		Lines: []domain.Line{
			domain.Dialogue{ID: "d1", Character: "A", Text: "hi"},
			domain.Goto{ID: "line1", TargetID: "next"},
			domain.Goto{ID: "line2", TargetName: domain.EndTarget},
		},
		Responses: []domain.Response{
			{ID: "response1", TargetID: "next"},
			{ID: "response2", TargetName: "dangling"},
		},
	}

	want := []domain.Link{
		{FromID: "line1", ToID: "next"},
		{FromID: "response1", ToID: "next"},
	}
	seq := Outgoing(&node)
	for pass := 1; pass <= 2; pass++ {
		if got := slices.Collect(seq); !slices.Equal(got, want) {
			t.Errorf("pass %d: Outgoing() = %v, want %v", pass, got, want)
		}
	}

	for link := range seq {
		if link.FromID != "line1" {
			t.Errorf("Expected first link from line1, got %v", link)
		}
		break
	}
}

func TestOwners(t *testing.T) {
	if got := Owners(nil); len(got) != 0 {
		t.Errorf("Owners(nil) = %v, want empty", got)
	}

	nodes := []domain.Node{
		{
			ID:    "node1",
			Name:  "Node 1",
			Lines: []domain.Line{domain.Blank{ID: "line1"}},
			Responses: []domain.Response{
				{ID: "response1", Prompt: "Next!", TargetID: "node2", TargetName: "Node 2"},
				{ID: "response2", Prompt: "That is all", TargetName: domain.EndTarget},
			},
		},
		{
			ID:        "node2",
			Name:      "Node 2",
			Responses: []domain.Response{{ID: "response3", TargetName: domain.EndTarget}},
		},
	}

	owners := Owners(nodes)
	if len(owners) != 4 {
		t.Fatalf("Expected 4 entries, got %d", len(owners))
	}
	for id, want := range map[string]string{
		"line1":     "node1",
		"response1": "node1",
		"response2": "node1",
		"response3": "node2",
	} {
		if got := owners[id]; got == nil || got.ID != want {
			t.Errorf("owner of %s = %v, want %s", id, got, want)
		}
	}
}

func TestFilter(t *testing.T) {
	if got := Filter("test", nil); len(got) != 0 {
		t.Errorf("Filter(nil) = %v, want empty", got)
	}

	t.Run("by name", func(t *testing.T) {
		nodes := []domain.Node{
			{ID: "id1", Name: "slug1"},
			{ID: "id2", Name: "slug2"},
			{
				ID:        "id3",
				Name:      "slug3",
				Responses: []domain.Response{{ID: "response1", TargetID: "id3", TargetName: "slug1"}},
			},
		}

		got := Filter("SLUG2", nodes)
		if len(got) != 1 || got[0].ID != "id2" {
			t.Errorf("Filter(SLUG2) = %v, want [id2]", ids(got))
		}

		// The third node links to the first.
		got = Filter("slug1", nodes)
		if want := []string{"id1", "id3"}; !slices.Equal(ids(got), want) {
			t.Errorf("Filter(slug1) = %v, want %v", ids(got), want)
		}
	})

	t.Run("by lines", func(t *testing.T) {
		nodes := []domain.Node{{
			ID:   "id1",
			Name: "slug1",
			Lines: []domain.Line{
				domain.Dialogue{ID: "line1", Condition: "condition=1", Character: "Character", Text: "Dialogue"},
				domain.Mutation{ID: "line2", Expression: "mutation"},
				domain.Goto{ID: "line3", TargetName: "goto"},
				domain.Comment{ID: "line4", Text: "secret"},
				domain.Blank{ID: "line5"},
			},
		}}

		for _, q := range []string{"condition", "character", "dialog", "MUTAT", "goto"} {
			if got := Filter(q, nodes); len(got) != 1 {
				t.Errorf("Filter(%q) matched %d nodes, want 1", q, len(got))
			}
		}
		for _, q := range []string{"No matches", "secret"} {
			if got := Filter(q, nodes); got == nil || len(got) != 0 {
				t.Errorf("Filter(%q) = %v, want empty", q, ids(got))
			}
		}
	})

	t.Run("by responses", func(t *testing.T) {
		nodes := []domain.Node{{
			ID:   "id1",
			Name: "slug1",
			Responses: []domain.Response{
				{ID: "response1", Condition: "condition=1", Prompt: "Prompt", TargetName: "next_slug"},
				{ID: "response2"},
			},
		}}

		for _, q := range []string{"condition", "prompt", "next_sl"} {
			if got := Filter(q, nodes); len(got) != 1 {
				t.Errorf("Filter(%q) matched %d nodes, want 1", q, len(got))
			}
		}
		if got := Filter("No matches", nodes); len(got) != 0 {
			t.Errorf("Filter(No matches) = %v, want empty", ids(got))
		}
	})
}

func ids(nodes []domain.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}
