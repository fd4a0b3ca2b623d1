package notes

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func edgesOfKind(g *Graph, kind EdgeKind) []Edge {
	var edges []Edge
	for _, e := range g.Links {
		if e.Kind == kind {
			edges = append(edges, e)
		}
	}
	return edges
}

func nodesOfKind(g *Graph, kind NodeKind) []Node {
	var nodes []Node
	for _, n := range g.Nodes {
		if n.Kind == kind {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func TestAssembleDailyNotesScenario(t *testing.T) {
	r1 := ParseFile("memory/2026-01-01.md", []byte("# Day one\n[[Launch]] #infra"))
	r2 := ParseFile("memory/2026-01-02.md", []byte("## Follow-up\n[[Launch]] #infra"))

	g := Assemble([]*fileResult{r1, r2})

	if got := len(nodesOfKind(g, NodeFile)); got != 2 {
		t.Errorf("file nodes = %d, want 2", got)
	}
	if got := len(nodesOfKind(g, NodeConcept)); got != 1 {
		t.Errorf("concept nodes = %d, want 1", got)
	}
	if got := len(nodesOfKind(g, NodeTag)); got != 1 {
		t.Errorf("tag nodes = %d, want 1", got)
	}
	if got := len(nodesOfKind(g, NodeEvent)); got != 1 {
		t.Errorf("event nodes = %d, want 1", got)
	}

	if got := len(edgesOfKind(g, EdgeContains)); got != 2 {
		t.Errorf("contains edges = %d, want 2", got)
	}
	if got := len(edgesOfKind(g, EdgeTagged)); got != 2 {
		t.Errorf("tagged edges = %d, want 2", got)
	}
	if got := len(edgesOfKind(g, EdgeHeader)); got != 1 {
		t.Errorf("header edges = %d, want 1", got)
	}

	// The Launch wikilink resolves to no file: silent no-op, no ref edge.
	if got := len(edgesOfKind(g, EdgeRef)); got != 0 {
		t.Errorf("ref edges = %d, want 0", got)
	}

	related := edgesOfKind(g, EdgeRelated)
	wantRelated := []Edge{{
		Source: "file:memory/2026-01-01.md",
		Target: "file:memory/2026-01-02.md",
		Kind:   EdgeRelated,
		Weight: 2,
	}}
	if !reflect.DeepEqual(related, wantRelated) {
		t.Errorf("related edges = %#v, want %#v", related, wantRelated)
	}

	timeline := edgesOfKind(g, EdgeTimeline)
	wantTimeline := []Edge{{
		Source: "file:memory/2026-01-01.md",
		Target: "file:memory/2026-01-02.md",
		Kind:   EdgeTimeline,
	}}
	if !reflect.DeepEqual(timeline, wantTimeline) {
		t.Errorf("timeline edges = %#v, want %#v", timeline, wantTimeline)
	}
}

func TestAssembleIsDeterministic(t *testing.T) {
	build := func(order []string) *Graph {
		contents := map[string]string{
			"MEMORY.md":            "[[Index]] #root links to [memo](memory/2026-01-01.md)",
			"memory/2026-01-01.md": "# Day one\n[[Launch]] #infra",
			"memory/2026-01-02.md": "## Follow-up\n[[Launch]] #infra",
		}
		results := make([]*fileResult, 0, len(order))
		for _, p := range order {
			results = append(results, ParseFile(p, []byte(contents[p])))
		}
		return Assemble(results)
	}

	a := build([]string{"MEMORY.md", "memory/2026-01-01.md", "memory/2026-01-02.md"})
	b := build([]string{"memory/2026-01-02.md", "MEMORY.md", "memory/2026-01-01.md"})

	if !reflect.DeepEqual(a, b) {
		t.Errorf("assembled graphs differ across input orderings")
	}
}

func TestAssembleTagCaseSensitivity(t *testing.T) {
	r1 := ParseFile("memory/a.md", []byte("#Tag"))
	r2 := ParseFile("memory/b.md", []byte("#tag"))

	g := Assemble([]*fileResult{r1, r2})

	tags := nodesOfKind(g, NodeTag)
	if len(tags) != 2 {
		t.Fatalf("tag nodes = %d, want 2 distinct case-sensitive tags", len(tags))
	}
}

func TestAssembleReferenceResolution(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantTarget string
	}{
		{
			name:       "plain root reference",
			content:    "[m](MEMORY.md)",
			wantTarget: "file:MEMORY.md",
		},
		{
			name:       "dot segments normalize identically",
			content:    "[m](./sub/../MEMORY.md)",
			wantTarget: "file:MEMORY.md",
		},
		{
			name:       "sibling by relative path",
			content:    "[o](other.md)",
			wantTarget: "file:memory/other.md",
		},
		{
			name:       "fragment suffix stripped",
			content:    "[o](other.md#section)",
			wantTarget: "file:memory/other.md",
		},
		{
			name:       "query suffix stripped",
			content:    "[o](other.md?x=1)",
			wantTarget: "file:memory/other.md",
		},
		{
			name:       "stem fallback",
			content:    "[[other]]",
			wantTarget: "file:memory/other.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := []*fileResult{
				ParseFile("MEMORY.md", []byte("root note")),
				ParseFile("memory/other.md", []byte("other note")),
				ParseFile("memory/src.md", []byte(tt.content)),
			}

			g := Assemble(results)

			refs := edgesOfKind(g, EdgeRef)
			if len(refs) != 1 {
				t.Fatalf("ref edges = %#v, want exactly one", refs)
			}
			if refs[0].Source != "file:memory/src.md" || refs[0].Target != tt.wantTarget {
				t.Errorf("ref edge = %#v, want target %q", refs[0], tt.wantTarget)
			}
		})
	}
}

func TestAssembleReferenceMissesAndSelfRefs(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unresolved target", "[text](nonexistent.md)"},
		{"self reference", "[me](src.md)"},
		{"http url", "[site](https://example.com/page.md)"},
		{"mailto url", "<mailto:someone@example.com>"},
		{"data url", "[d](data:text/plain;base64,aGk=)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := []*fileResult{
				ParseFile("memory/src.md", []byte(tt.content)),
			}

			g := Assemble(results)

			if refs := edgesOfKind(g, EdgeRef); len(refs) != 0 {
				t.Errorf("ref edges = %#v, want none", refs)
			}
		})
	}
}

const tenSharedWords = "alpine bravado charlie deltas echoes foxtrot golfing hotels indigo juliet"

func TestAssembleSimilarityEdges(t *testing.T) {
	r1 := ParseFile("memory/a.md", []byte(tenSharedWords))
	r2 := ParseFile("memory/b.md", []byte(tenSharedWords+" kilogram limabean"))

	g := Assemble([]*fileResult{r1, r2})

	related := edgesOfKind(g, EdgeRelated)
	if len(related) != 1 {
		t.Fatalf("related edges = %#v, want exactly one per unordered pair", related)
	}

	edge := related[0]
	if edge.Source != "file:memory/a.md" || edge.Target != "file:memory/b.md" {
		t.Errorf("similarity edge pair = %s -> %s", edge.Source, edge.Target)
	}
	if edge.Weight != 10 {
		t.Errorf("similarity weight = %d, want 10", edge.Weight)
	}
	wantScore := 10.0 / 12.0
	if edge.Score != wantScore {
		t.Errorf("similarity score = %v, want %v", edge.Score, wantScore)
	}

	// Symmetry: the reversed input order yields the same single edge.
	reversed := Assemble([]*fileResult{
		ParseFile("memory/b.md", []byte(tenSharedWords+" kilogram limabean")),
		ParseFile("memory/a.md", []byte(tenSharedWords)),
	})
	if !reflect.DeepEqual(edgesOfKind(reversed, EdgeRelated), related) {
		t.Errorf("similarity scoring is not symmetric across input order")
	}
}

func TestAssembleSimilarityBelowThreshold(t *testing.T) {
	// Shared tags link the files, but two shared keywords are far below
	// the similarity minimum: only the shared-token edge may appear.
	r1 := ParseFile("memory/a.md", []byte("#shared alpine bravado"))
	r2 := ParseFile("memory/b.md", []byte("#shared alpine bravado"))

	g := Assemble([]*fileResult{r1, r2})

	related := edgesOfKind(g, EdgeRelated)
	if len(related) != 1 {
		t.Fatalf("related edges = %#v, want only the shared-token edge", related)
	}
	if related[0].Score != 0 {
		t.Errorf("shared-token edge carries score %v, want none", related[0].Score)
	}
}

func TestAssembleDuplicateRelatedEdgesRetained(t *testing.T) {
	content := "#alpha #beta " + tenSharedWords

	g := Assemble([]*fileResult{
		ParseFile("memory/a.md", []byte(content)),
		ParseFile("memory/b.md", []byte(content)),
	})

	// The shared-token pass and the similarity pass each emit an edge for
	// the same pair; both are retained.
	related := edgesOfKind(g, EdgeRelated)
	if len(related) != 2 {
		t.Fatalf("related edges = %#v, want both derivation paths retained", related)
	}
	if related[0].Score != 0 || related[1].Score == 0 {
		t.Errorf("expected shared-token edge first and scored similarity edge second, got %#v", related)
	}
}

func TestTopSimilarityCap(t *testing.T) {
	candidates := make([]simCandidate, 0, maxSimilarityEdges+1)
	for i := 0; i <= maxSimilarityEdges; i++ {
		candidates = append(candidates, simCandidate{
			source: fmt.Sprintf("memory/%04d.md", i),
			target: fmt.Sprintf("memory/%04d.md", i+1000),
			shared: minSharedKeywords,
			score:  float64(maxSimilarityEdges+1-i) / 1000.0,
		})
	}

	kept := topSimilarity(candidates)

	if len(kept) != maxSimilarityEdges {
		t.Fatalf("kept %d candidates, want %d", len(kept), maxSimilarityEdges)
	}
	lowest := candidates[maxSimilarityEdges]
	for _, cand := range kept {
		if cand == lowest {
			t.Errorf("lowest-ranked candidate survived the cap: %#v", cand)
		}
	}
}

func TestTopSimilarityOrdering(t *testing.T) {
	candidates := []simCandidate{
		{source: "b", target: "c", shared: 9, score: 0.5},
		{source: "a", target: "b", shared: 12, score: 0.5},
		{source: "a", target: "c", shared: 12, score: 0.7},
	}

	got := topSimilarity(candidates)

	want := []simCandidate{
		{source: "a", target: "c", shared: 12, score: 0.7},
		{source: "a", target: "b", shared: 12, score: 0.5},
		{source: "b", target: "c", shared: 9, score: 0.5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("topSimilarity() = %#v, want %#v", got, want)
	}
}

func TestAssembleTimeline(t *testing.T) {
	t.Run("chronological chain", func(t *testing.T) {
		g := Assemble([]*fileResult{
			ParseFile("memory/2026-01-03.md", []byte("c")),
			ParseFile("memory/2026-01-01.md", []byte("a")),
			ParseFile("memory/2026-01-02.md", []byte("b")),
			ParseFile("memory/undated.md", []byte("x")),
		})

		want := []Edge{
			{Source: "file:memory/2026-01-01.md", Target: "file:memory/2026-01-02.md", Kind: EdgeTimeline},
			{Source: "file:memory/2026-01-02.md", Target: "file:memory/2026-01-03.md", Kind: EdgeTimeline},
		}
		if got := edgesOfKind(g, EdgeTimeline); !reflect.DeepEqual(got, want) {
			t.Errorf("timeline edges = %#v, want %#v", got, want)
		}
	})

	t.Run("single dated file has no chain", func(t *testing.T) {
		g := Assemble([]*fileResult{
			ParseFile("memory/2026-01-01.md", []byte("a")),
			ParseFile("memory/undated.md", []byte("x")),
		})

		if got := edgesOfKind(g, EdgeTimeline); len(got) != 0 {
			t.Errorf("timeline edges = %#v, want none", got)
		}
	})
}

func TestIsDailyNoteName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"valid date", "2026-01-01.md", true},
		{"wrong extension", "2026-01-01.txt", false},
		{"missing hyphens", "20260101ab.md", false},
		{"letters in date", "2026-ab-01.md", false},
		{"too short", "2026-1-1.md", false},
		{"prefixed", "x2026-01-01.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDailyNoteName(tt.in); got != tt.want {
				t.Errorf("isDailyNoteName(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAssembleNodeDedupFirstSeenWins(t *testing.T) {
	// memory/a.md sorts before memory/b.md, so its label wins.
	r1 := ParseFile("memory/b.md", []byte("---\ntitle: Second\n---\n[[Launch]]"))
	r2 := ParseFile("memory/a.md", []byte("---\ntitle: First\n---\n[[Launch]]"))

	g := Assemble([]*fileResult{r1, r2})

	concepts := nodesOfKind(g, NodeConcept)
	if len(concepts) != 1 {
		t.Fatalf("concept nodes = %d, want 1", len(concepts))
	}

	var labels []string
	for _, n := range nodesOfKind(g, NodeFile) {
		labels = append(labels, n.Label)
	}
	if !reflect.DeepEqual(labels, []string{"First", "Second"}) {
		t.Errorf("file labels = %#v, want path-sorted order", labels)
	}
}

func TestAssembleSharedTokenEdgesPairwise(t *testing.T) {
	// Three files all sharing one tag: one edge per unordered pair.
	results := []*fileResult{
		ParseFile("memory/a.md", []byte("#common")),
		ParseFile("memory/b.md", []byte("#common")),
		ParseFile("memory/c.md", []byte("#common")),
	}

	g := Assemble(results)

	related := edgesOfKind(g, EdgeRelated)
	if len(related) != 3 {
		t.Fatalf("related edges = %d, want 3 pairs", len(related))
	}
	for _, e := range related {
		if e.Weight != 1 {
			t.Errorf("shared-token weight = %d, want 1 (%s -> %s)", e.Weight, e.Source, e.Target)
		}
		if !strings.HasPrefix(e.Source, "file:") || !strings.HasPrefix(e.Target, "file:") {
			t.Errorf("related edge endpoints must be files: %#v", e)
		}
	}
}
