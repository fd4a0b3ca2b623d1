package notes

import (
	"bytes"
	"path"
	"strings"

	"github.com/adrg/frontmatter"
)

// fileResult is the transient output of parsing one file. It is owned by
// the assembler during a single build and discarded afterwards.
type fileResult struct {
	path     string // relative to the corpus root, slash-separated
	nodes    []Node
	edges    []Edge
	refs     []string
	keywords []string
}

type noteMeta struct {
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags"`
}

// ParseFile extracts the entity nodes, file-scoped edges, raw reference
// candidates and keyword set from one file's content. The extraction rules
// are independent of each other and of file ordering.
func ParseFile(relPath string, content []byte) *fileResult {
	var meta noteMeta
	body, err := frontmatter.Parse(bytes.NewReader(content), &meta)
	if err != nil {
		// Malformed frontmatter degrades to treating the whole file
		// as body text.
		body = content
		meta = noteMeta{}
	}
	text := string(body)

	res := &fileResult{path: relPath}
	fileID := fileNodeID(relPath)

	label := strings.TrimSpace(meta.Title)
	if label == "" {
		label = fileStem(relPath)
	}
	res.nodes = append(res.nodes, newNode(fileID, NodeFile, label, relPath))

	for _, link := range scanWikilinks(text) {
		res.nodes = append(res.nodes, newNode(conceptNodeID(link), NodeConcept, link, ""))
		res.edges = append(res.edges, Edge{Source: fileID, Target: conceptNodeID(link), Kind: EdgeContains})
		// The same text may simultaneously resolve to a file later.
		res.refs = append(res.refs, link)
	}

	tags := append([]string{}, meta.Tags...)
	tags = append(tags, scanTags(text)...)
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		res.nodes = append(res.nodes, newNode(tagNodeID(tag), NodeTag, "#"+tag, ""))
		res.edges = append(res.edges, Edge{Source: fileID, Target: tagNodeID(tag), Kind: EdgeTagged})
	}

	for _, header := range scanHeaders(text) {
		id := eventNodeID(relPath, header)
		res.nodes = append(res.nodes, newNode(id, NodeEvent, header, relPath))
		res.edges = append(res.edges, Edge{Source: fileID, Target: id, Kind: EdgeHeader})
	}

	res.refs = append(res.refs, scanRefTargets(text)...)
	res.keywords = extractKeywords(text)

	return res
}

func emptyResult(relPath string) *fileResult {
	return &fileResult{path: relPath}
}

func fileStem(relPath string) string {
	return strings.TrimSuffix(path.Base(relPath), ".md")
}
