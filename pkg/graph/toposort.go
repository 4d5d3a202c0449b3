package graph

// topoOrder produces the bundle order by post-order depth-first traversal
// from the entry: every dependency is pushed before its dependents, so the
// entry lands last. Dependencies are visited in require order, which makes
// the result deterministic for a fixed input tree.
func topoOrder(modules map[string]*Node, entry string) []string {
	visited := make(map[string]bool, len(modules))
	order := make([]string, 0, len(modules))

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true

		for _, dep := range modules[id].Dependencies {
			visit(dep)
		}
		order = append(order, id)
	}

	visit(entry)
	return order
}
