package render

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrResourceCycle is returned when CSS resources depend on each other in a
// cycle. It always means a relationship calculator is misconfigured.
var ErrResourceCycle = errors.New("resource cycle detected")

// graph is a directed acyclic graph of CSS resources. Nodes point at their
// dependencies, and dependencies are always walked first: with an edge from
// 1 to 2, node 2 renders before node 1.
type graph struct {
	nodes []cssResource

	// edgesTo is keyed by the node being pointed at. With an edge from 1
	// to 2, edgesTo[2] holds 1.
	edgesTo map[int]map[int]struct{}

	// edgesFrom is keyed by the node doing the pointing. With an edge from
	// 1 to 2, edgesFrom[1] holds 2.
	edgesFrom map[int]map[int]struct{}
}

func newGraph() graph {
	return graph{
		edgesTo:   map[int]map[int]struct{}{},
		edgesFrom: map[int]map[int]struct{}{},
	}
}

// addEdge records that from must render after to.
func (g *graph) addEdge(from, to int) {
	if g.edgesFrom[from] == nil {
		g.edgesFrom[from] = map[int]struct{}{}
	}
	if g.edgesTo[to] == nil {
		g.edgesTo[to] = map[int]struct{}{}
	}
	g.edgesFrom[from][to] = struct{}{}
	g.edgesTo[to][from] = struct{}{}
}

// addOrdered adds resources listed by one Component. Each implicitly ordered
// resource depends on the implicitly ordered resource before it, so the
// Component's order is preserved. Resources already in the graph are skipped.
func (g *graph) addOrdered(resources []cssResource) {
	last := -1
	for _, res := range resources {
		if slices.ContainsFunc(g.nodes, func(existing cssResource) bool {
			return existing.key() == res.key()
		}) {
			continue
		}
		g.nodes = append(g.nodes, res)
		if !res.implicitlyOrdered() {
			continue
		}
		this := len(g.nodes) - 1
		if last >= 0 {
			g.addEdge(this, last)
		}
		last = this
	}
}

// buildCSSGraph collects the CSS resources of every component and computes
// their dependencies.
func buildCSSGraph(ctx context.Context, components []Component) graph {
	result := newGraph()
	for _, component := range components {
		if linker, ok := component.(CSSLinker); ok {
			links := linker.LinkCSS(ctx)
			resources := make([]cssResource, 0, len(links))
			for _, link := range links {
				resources = append(resources, link)
			}
			result.addOrdered(resources)
		}
		if embedder, ok := component.(CSSEmbedder); ok {
			blocks := embedder.EmbedCSS(ctx)
			resources := make([]cssResource, 0, len(blocks))
			for _, block := range blocks {
				resources = append(resources, block)
			}
			result.addOrdered(resources)
		}
	}
	for pos, resource := range result.nodes {
		if !resource.explicitlyOrdered() {
			continue
		}
		for compPos, comparison := range result.nodes {
			if pos == compPos {
				continue
			}
			switch resource.relationTo(ctx, comparison) {
			case ResourceRelationshipAfter:
				result.addEdge(pos, compPos)
			case ResourceRelationshipBefore:
				result.addEdge(compPos, pos)
			case ResourceRelationshipNeutral:
				// no dependency
			}
		}
	}
	return result
}

// compareResources breaks ties between resources that are free to render in
// any order: links first, then inline blocks, each sorted by key.
func compareResources(first, second cssResource) int {
	rank := func(res cssResource) int {
		if _, ok := res.(CSSLink); ok {
			return 0
		}
		return 1
	}
	if diff := rank(first) - rank(second); diff != 0 {
		return diff
	}
	return strings.Compare(first.key(), second.key())
}

// walkGraph returns the nodes of resources in dependency order. The graph's
// edges are consumed in the process.
func walkGraph(resources graph) ([]cssResource, error) {
	byPos := func(a, b int) int {
		return compareResources(resources.nodes[a], resources.nodes[b])
	}
	noParents := make([]int, 0, len(resources.nodes))
	results := make([]cssResource, 0, len(resources.nodes))
	for pos := range resources.nodes {
		if len(resources.edgesFrom[pos]) < 1 {
			noParents = append(noParents, pos)
		}
	}
	slices.SortFunc(noParents, byPos)
	for len(noParents) > 0 {
		pos := noParents[0]
		noParents = noParents[1:]
		results = append(results, resources.nodes[pos])
		var changed bool
		for child := range resources.edgesTo[pos] {
			delete(resources.edgesFrom[child], pos)
			delete(resources.edgesTo[pos], child)
			if len(resources.edgesFrom[child]) < 1 {
				delete(resources.edgesFrom, child)
				noParents = append(noParents, child)
				changed = true
			}
		}
		delete(resources.edgesTo, pos)
		if changed {
			slices.SortFunc(noParents, byPos)
		}
	}
	if len(resources.edgesTo) > 0 || len(resources.edgesFrom) > 0 {
		return results, fmt.Errorf("%w: edges_from=[%s], resources=[%s]", ErrResourceCycle, describeEdges(resources.edgesFrom), describeNodes(resources.nodes))
	}
	return results, nil
}

func describeEdges(edges map[int]map[int]struct{}) string {
	keys := make([]int, 0, len(edges))
	for k := range edges {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		vals := make([]int, 0, len(edges[k]))
		for v := range edges[k] {
			vals = append(vals, v)
		}
		slices.Sort(vals)
		strs := make([]string, 0, len(vals))
		for _, v := range vals {
			strs = append(strs, strconv.Itoa(v))
		}
		parts = append(parts, strconv.Itoa(k)+":"+strings.Join(strs, ","))
	}
	return strings.Join(parts, "; ")
}

func describeNodes(nodes []cssResource) string {
	ids := make([]string, 0, len(nodes))
	for _, node := range nodes {
		switch res := node.(type) {
		case CSSLink:
			ids = append(ids, fmt.Sprintf("CSSLink(%s)", res.Href))
		case CSSInline:
			ids = append(ids, fmt.Sprintf("CSSInline(%s)", res.TemplatePath))
		}
	}
	return strings.Join(ids, ", ")
}
