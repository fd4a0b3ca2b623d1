package notes

import (
	"path"
	"sort"
	"strings"
)

// Similarity thresholds are tuned for short personal logs and treated as
// configuration constants; they are not inferred from the corpus.
const (
	minSharedKeywords  = 8
	minSimilarityScore = 0.03
	maxSimilarityEdges = 120
)

// Assemble merges per-file parse results into one graph: nodes are
// deduplicated by identity (first-seen attributes win), textual references
// are resolved into ref edges, related edges are derived from shared
// concept/tag vocabulary and from keyword similarity, and dated files are
// chained chronologically.
//
// Results are sorted by path first, so the output is byte-for-byte
// reproducible regardless of parse completion order.
func Assemble(results []*fileResult) *Graph {
	sorted := make([]*fileResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].path < sorted[j].path })

	graph := &Graph{
		Nodes: make([]Node, 0),
		Links: make([]Edge, 0),
	}

	seen := make(map[string]struct{})
	for _, res := range sorted {
		for _, node := range res.nodes {
			if _, dup := seen[node.ID]; dup {
				continue
			}
			seen[node.ID] = struct{}{}
			graph.Nodes = append(graph.Nodes, node)
		}
		graph.Links = append(graph.Links, res.edges...)
	}

	resolveReferences(graph, sorted)
	appendSharedTokenEdges(graph, sorted)
	appendSimilarityEdges(graph, sorted)
	appendTimelineEdges(graph)

	return graph
}

type refIndex struct {
	byPath map[string]string
	byBase map[string]string
	byStem map[string]string
}

func buildRefIndex(graph *Graph) *refIndex {
	idx := &refIndex{
		byPath: make(map[string]string),
		byBase: make(map[string]string),
		byStem: make(map[string]string),
	}
	for _, node := range graph.Nodes {
		if node.Kind != NodeFile {
			continue
		}
		idx.byPath[node.Path] = node.ID
		base := path.Base(node.Path)
		if _, dup := idx.byBase[base]; !dup {
			idx.byBase[base] = node.ID
		}
		stem := strings.TrimSuffix(base, ".md")
		if _, dup := idx.byStem[stem]; !dup {
			idx.byStem[stem] = node.ID
		}
	}
	return idx
}

// resolveReferences turns raw textual references into ref edges. Unresolved
// references are a silent no-op, never an error.
func resolveReferences(graph *Graph, results []*fileResult) {
	idx := buildRefIndex(graph)

	for _, res := range results {
		sourceID := fileNodeID(res.path)
		for _, raw := range res.refs {
			targetID, ok := resolveRef(idx, res.path, raw)
			if !ok || targetID == sourceID {
				continue
			}
			graph.Links = append(graph.Links, Edge{
				Source: sourceID,
				Target: targetID,
				Kind:   EdgeRef,
			})
		}
	}
}

func isSchemeURL(ref string) bool {
	lower := strings.ToLower(ref)
	for _, prefix := range []string{"http://", "https://", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// resolveRef resolves one raw reference string against the known file
// nodes. Candidates are tried in order: the path normalized relative to the
// referencing file's directory, the raw stripped reference, and the bare
// basename, each against the path and basename indices, with a stem-only
// fallback. The first match wins.
func resolveRef(idx *refIndex, fromPath, raw string) (string, bool) {
	if isSchemeURL(raw) {
		return "", false
	}

	ref := raw
	if cut := strings.IndexAny(ref, "#?"); cut >= 0 {
		ref = ref[:cut]
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}
	ref = path.Clean(strings.TrimPrefix(ref, "./"))

	normalized := path.Clean(path.Join(path.Dir(fromPath), ref))
	base := path.Base(ref)

	for _, candidate := range []string{normalized, ref, base} {
		if id, ok := idx.byPath[candidate]; ok {
			return id, true
		}
		if id, ok := idx.byBase[candidate]; ok {
			return id, true
		}
	}

	if id, ok := idx.byStem[strings.TrimSuffix(base, ".md")]; ok {
		return id, true
	}
	return "", false
}

// appendSharedTokenEdges adds one related edge per unordered pair of files
// whose linked concept/tag sets overlap, weighted by the overlap count.
// Quadratic in file count; acceptable at personal-log scale.
func appendSharedTokenEdges(graph *Graph, results []*fileResult) {
	type tokenSet struct {
		path   string
		tokens map[string]struct{}
	}

	sets := make([]tokenSet, 0, len(results))
	for _, res := range results {
		tokens := make(map[string]struct{})
		for _, edge := range res.edges {
			if edge.Kind == EdgeContains || edge.Kind == EdgeTagged {
				tokens[edge.Target] = struct{}{}
			}
		}
		if len(tokens) > 0 {
			sets = append(sets, tokenSet{path: res.path, tokens: tokens})
		}
	}

	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			shared := 0
			for token := range sets[i].tokens {
				if _, ok := sets[j].tokens[token]; ok {
					shared++
				}
			}
			if shared == 0 {
				continue
			}
			graph.Links = append(graph.Links, Edge{
				Source: fileNodeID(sets[i].path),
				Target: fileNodeID(sets[j].path),
				Kind:   EdgeRelated,
				Weight: shared,
			})
		}
	}
}

type simCandidate struct {
	source string
	target string
	shared int
	score  float64
}

// appendSimilarityEdges scores every file pair's keyword overlap with a
// Jaccard ratio and keeps the strongest pairs globally, bounding the drawn
// graph's density. Duplicate related edges for pairs already linked by the
// shared-token pass are retained on purpose.
func appendSimilarityEdges(graph *Graph, results []*fileResult) {
	type keywordSet struct {
		path   string
		size   int
		tokens map[string]struct{}
	}

	sets := make([]keywordSet, 0, len(results))
	for _, res := range results {
		if len(res.keywords) == 0 {
			continue
		}
		tokens := make(map[string]struct{}, len(res.keywords))
		for _, kw := range res.keywords {
			tokens[kw] = struct{}{}
		}
		sets = append(sets, keywordSet{path: res.path, size: len(tokens), tokens: tokens})
	}

	var candidates []simCandidate
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			shared := 0
			for token := range sets[i].tokens {
				if _, ok := sets[j].tokens[token]; ok {
					shared++
				}
			}
			if shared < minSharedKeywords {
				continue
			}
			// Plain division, no rounding, so ranking is stable.
			score := float64(shared) / float64(sets[i].size+sets[j].size-shared)
			if score < minSimilarityScore {
				continue
			}
			candidates = append(candidates, simCandidate{
				source: sets[i].path,
				target: sets[j].path,
				shared: shared,
				score:  score,
			})
		}
	}

	for _, cand := range topSimilarity(candidates) {
		graph.Links = append(graph.Links, Edge{
			Source: fileNodeID(cand.source),
			Target: fileNodeID(cand.target),
			Kind:   EdgeRelated,
			Weight: cand.shared,
			Score:  cand.score,
		})
	}
}

// topSimilarity ranks candidates by (score desc, shared desc, pair asc) and
// keeps at most maxSimilarityEdges of them.
func topSimilarity(candidates []simCandidate) []simCandidate {
	ranked := make([]simCandidate, len(candidates))
	copy(ranked, candidates)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		if ranked[i].shared != ranked[j].shared {
			return ranked[i].shared > ranked[j].shared
		}
		if ranked[i].source != ranked[j].source {
			return ranked[i].source < ranked[j].source
		}
		return ranked[i].target < ranked[j].target
	})
	if len(ranked) > maxSimilarityEdges {
		ranked = ranked[:maxSimilarityEdges]
	}
	return ranked
}

// appendTimelineEdges links each dated daily file to its immediate
// chronological successor. The YYYY-MM-DD naming scheme makes lexicographic
// order chronological.
func appendTimelineEdges(graph *Graph) {
	type datedFile struct {
		base string
		id   string
	}

	var dated []datedFile
	for _, node := range graph.Nodes {
		if node.Kind != NodeFile {
			continue
		}
		base := path.Base(node.Path)
		if isDailyNoteName(base) {
			dated = append(dated, datedFile{base: base, id: node.ID})
		}
	}
	if len(dated) < 2 {
		return
	}

	sort.Slice(dated, func(i, j int) bool { return dated[i].base < dated[j].base })

	for i := 0; i+1 < len(dated); i++ {
		graph.Links = append(graph.Links, Edge{
			Source: dated[i].id,
			Target: dated[i+1].id,
			Kind:   EdgeTimeline,
		})
	}
}

// isDailyNoteName reports whether name matches YYYY-MM-DD.md.
func isDailyNoteName(name string) bool {
	if len(name) != 13 || !strings.HasSuffix(name, ".md") {
		return false
	}
	for i, c := range name[:10] {
		if i == 4 || i == 7 {
			if c != '-' {
				return false
			}
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
