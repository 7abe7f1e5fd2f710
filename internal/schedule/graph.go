package schedule

// BuildDependencyGraph builds the adjacency map item ID → prerequisite IDs.
func BuildDependencyGraph(items []Item) map[string][]string {
	graph := make(map[string][]string, len(items))
	for _, it := range items {
		graph[it.ID] = it.DependsOn
	}
	return graph
}

// FindCycle runs a three-color DFS over the dependency graph and returns the
// participant IDs of the first cycle found, in forward order with the entry
// node repeated at the end. Returns nil if the graph is acyclic. Edges to
// unknown IDs are skipped; they are handled as unsatisfiable dependencies
// during assignment, not as structural failures.
func FindCycle(items []Item, graph map[string][]string) []string {
	const (
		white = 0 // unvisited
		gray  = 1 // in current path
		black = 2 // finished
	)

	known := make(map[string]bool, len(items))
	for _, it := range items {
		known[it.ID] = true
	}

	color := make(map[string]int, len(items))
	parent := make(map[string]string)

	var cyclePath []string

	var dfs func(node string) bool
	dfs = func(node string) bool {
		color[node] = gray
		for _, dep := range graph[node] {
			if !known[dep] {
				continue
			}
			if color[dep] == gray {
				// Back edge: reconstruct the cycle path
				cyclePath = []string{dep}
				current := node
				for current != dep {
					cyclePath = append(cyclePath, current)
					current = parent[current]
				}
				cyclePath = append(cyclePath, dep)
				for i, j := 0, len(cyclePath)-1; i < j; i, j = i+1, j-1 {
					cyclePath[i], cyclePath[j] = cyclePath[j], cyclePath[i]
				}
				return true
			}
			if color[dep] == white {
				parent[dep] = node
				if dfs(dep) {
					return true
				}
			}
		}
		color[node] = black
		return false
	}

	for _, it := range items {
		if color[it.ID] == white {
			if dfs(it.ID) {
				return cyclePath
			}
		}
	}

	return nil
}

// dependentsOf builds the reverse adjacency: item ID → IDs of items that
// directly depend on it. Only edges between known items are included.
func dependentsOf(items []Item, graph map[string][]string) map[string][]string {
	known := make(map[string]bool, len(items))
	for _, it := range items {
		known[it.ID] = true
	}
	dependents := make(map[string][]string)
	for _, it := range items {
		for _, dep := range graph[it.ID] {
			if known[dep] {
				dependents[dep] = append(dependents[dep], it.ID)
			}
		}
	}
	return dependents
}

// transitiveDependents returns every item that directly or transitively
// depends on the given item, via BFS over the reverse adjacency.
func transitiveDependents(id string, dependents map[string][]string) []string {
	visited := make(map[string]bool)
	queue := []string{id}
	var result []string

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dep := range dependents[current] {
			if visited[dep] {
				continue
			}
			visited[dep] = true
			result = append(result, dep)
			queue = append(queue, dep)
		}
	}

	return result
}
