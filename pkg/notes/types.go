package notes

import "strings"

// NodeKind identifies the variant of a graph node.
type NodeKind string

const (
	NodeFile    NodeKind = "file"
	NodeConcept NodeKind = "concept"
	NodeTag     NodeKind = "tag"
	NodeEvent   NodeKind = "event"
)

// EdgeKind identifies the relationship an edge expresses.
type EdgeKind string

const (
	EdgeContains EdgeKind = "contains"
	EdgeTagged   EdgeKind = "tagged"
	EdgeHeader   EdgeKind = "header"
	EdgeRef      EdgeKind = "ref"
	EdgeRelated  EdgeKind = "related"
	EdgeTimeline EdgeKind = "timeline"
)

// Node represents an entity extracted from the note corpus. The ID is the
// deduplication key across the whole corpus: it prefixes the kind onto a
// kind-specific natural key (file → relative path, concept → wikilink text,
// tag → tag text, event → path#header).
type Node struct {
	ID         string   `json:"id"`
	Kind       NodeKind `json:"kind"`
	Label      string   `json:"label"`
	ShortLabel string   `json:"short_label,omitempty"`
	FullLabel  string   `json:"full_label"`
	Path       string   `json:"path,omitempty"`
}

// Edge is a directed pair of node IDs tagged with a kind. Edges are not
// deduplicated against each other; the same pair may carry multiple kinds,
// and `related` edges derived independently by the shared-token and the
// keyword-similarity passes are both retained.
type Edge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Kind   EdgeKind `json:"kind"`
	Weight int      `json:"weight,omitempty"`
	Score  float64  `json:"score,omitempty"`
}

// Graph is the assembled corpus graph, shaped for direct serialization to
// the rendering layer.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Edge `json:"links"`
}

const shortLabelRunes = 24

func fileNodeID(relPath string) string    { return "file:" + relPath }
func conceptNodeID(text string) string    { return "concept:" + text }
func tagNodeID(text string) string        { return "tag:" + text }
func eventNodeID(relPath, header string) string {
	return "event:" + relPath + "#" + header
}

func newNode(id string, kind NodeKind, label, path string) Node {
	return Node{
		ID:         id,
		Kind:       kind,
		Label:      label,
		ShortLabel: truncateLabel(label, shortLabelRunes),
		FullLabel:  label,
		Path:       path,
	}
}

func truncateLabel(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return strings.TrimSpace(string(runes[:maxRunes])) + "…"
}
