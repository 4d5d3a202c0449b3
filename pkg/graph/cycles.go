package graph

import (
	"sort"
	"strings"
)

// detectCycles runs a depth-first sweep over the whole graph and returns
// every distinct cycle. Each cycle is reported once, rotated so its
// lexicographically smallest module id comes first, with that module repeated
// at the end (a → b → a). Self-edges count as cycles.
func detectCycles(modules map[string]*Node) [][]string {
	d := &cycleDetector{
		modules: modules,
		visited: make(map[string]bool),
		onStack: make(map[string]bool),
		seen:    make(map[string]bool),
	}

	// Sorted start order keeps reporting deterministic regardless of map
	// iteration order.
	ids := make([]string, 0, len(modules))
	for id := range modules {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if !d.visited[id] {
			d.visit(id)
		}
	}

	return d.cycles
}

type cycleDetector struct {
	modules map[string]*Node
	visited map[string]bool
	onStack map[string]bool
	path    []string
	seen    map[string]bool
	cycles  [][]string
}

func (d *cycleDetector) visit(id string) {
	d.visited[id] = true
	d.onStack[id] = true
	d.path = append(d.path, id)

	for _, dep := range d.modules[id].Dependencies {
		if d.onStack[dep] {
			d.record(dep)
			continue
		}
		if !d.visited[dep] {
			d.visit(dep)
		}
	}

	d.path = d.path[:len(d.path)-1]
	d.onStack[id] = false
}

// record captures the cycle formed by the path slice from the first
// occurrence of closing to the top of the stack.
func (d *cycleDetector) record(closing string) {
	start := 0
	for i, id := range d.path {
		if id == closing {
			start = i
			break
		}
	}

	cycle := canonicalize(d.path[start:])
	key := strings.Join(cycle, "\x00")
	if d.seen[key] {
		return
	}
	d.seen[key] = true

	closed := make([]string, 0, len(cycle)+1)
	closed = append(closed, cycle...)
	closed = append(closed, cycle[0])
	d.cycles = append(d.cycles, closed)
}

// canonicalize rotates the node list (without the duplicated closing node) to
// its lexicographically smallest rotation, so the same cycle discovered from
// different entry points collapses to one key.
func canonicalize(nodes []string) []string {
	best := 0
	for i := 1; i < len(nodes); i++ {
		if rotationLess(nodes, i, best) {
			best = i
		}
	}

	rotated := make([]string, 0, len(nodes))
	rotated = append(rotated, nodes[best:]...)
	rotated = append(rotated, nodes[:best]...)
	return rotated
}

// rotationLess reports whether the rotation starting at i sorts before the
// rotation starting at j.
func rotationLess(nodes []string, i, j int) bool {
	n := len(nodes)
	for k := 0; k < n; k++ {
		a, b := nodes[(i+k)%n], nodes[(j+k)%n]
		if a != b {
			return a < b
		}
	}
	return false
}
