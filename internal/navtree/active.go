package navtree

import "strings"

// IsActive reports whether the node at nodePath is active for currentPath:
// the paths are equal, or currentPath lies inside nodePath. Matching is done
// on whole path segments, so "/vocabulary/1" is not active for "/vocabulary/10".
func IsActive(nodePath, currentPath string) bool {
	node := splitPath(nodePath)
	cur := splitPath(currentPath)
	if len(node) == 0 || len(node) > len(cur) {
		return false
	}
	for i := range node {
		if node[i] != cur[i] {
			return false
		}
	}
	return true
}

func splitPath(p string) []string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	parts := strings.Split(p, "/")
	out := parts[:0]
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
