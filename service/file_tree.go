package service

import (
	"path"
	"sort"
	"strings"

	"github.com/terojleinonen/kinscan/domain"
)

// FileTreeNode is one directory or file entry in the explorer tree. Nodes
// live in the arena and reference each other by index, never by pointer,
// so two files sharing a path prefix can never alias distinct nodes.
type FileTreeNode struct {
	// Name is the path segment for this node
	Name string

	// Path is the full path from the root
	Path string

	// IsFile marks leaf nodes carrying a quality record
	IsFile bool

	// Quality is the file's record; only set on file nodes
	Quality *domain.FileQuality

	// Children are arena indices of child nodes, sorted by name with
	// directories first
	Children []int
}

// FileTree is an arena of nodes built once from a flat FileQuality slice.
// Index 0 is always the root.
type FileTree struct {
	Nodes []FileTreeNode

	// index maps full paths to arena positions during construction
	index map[string]int
}

// BuildFileTree groups a flat quality list into a directory tree. Paths
// are normalized to forward slashes; duplicate file paths keep the last
// record.
func BuildFileTree(files []domain.FileQuality) *FileTree {
	tree := &FileTree{
		Nodes: []FileTreeNode{{Name: "", Path: ""}},
		index: map[string]int{"": 0},
	}

	for i := range files {
		tree.insert(&files[i])
	}

	tree.sortChildren(0)
	return tree
}

// Root returns the root node
func (t *FileTree) Root() *FileTreeNode {
	return &t.Nodes[0]
}

// Node returns the node at an arena index
func (t *FileTree) Node(i int) *FileTreeNode {
	return &t.Nodes[i]
}

func (t *FileTree) insert(file *domain.FileQuality) {
	normalized := path.Clean(strings.ReplaceAll(file.FilePath, "\\", "/"))
	normalized = strings.TrimPrefix(normalized, "./")

	segments := strings.Split(normalized, "/")
	parent := 0
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		full := strings.Join(segments[:i+1], "/")
		idx, ok := t.index[full]
		if !ok {
			idx = len(t.Nodes)
			t.Nodes = append(t.Nodes, FileTreeNode{Name: segment, Path: full})
			t.index[full] = idx
			t.Nodes[parent].Children = append(t.Nodes[parent].Children, idx)
		}
		parent = idx
	}

	leaf := &t.Nodes[parent]
	leaf.IsFile = true
	leaf.Quality = file
}

// sortChildren orders every directory's children: directories before
// files, then by name
func (t *FileTree) sortChildren(i int) {
	children := t.Nodes[i].Children
	sort.SliceStable(children, func(a, b int) bool {
		na, nb := t.Nodes[children[a]], t.Nodes[children[b]]
		if na.IsFile != nb.IsFile {
			return !na.IsFile
		}
		return na.Name < nb.Name
	})
	for _, child := range children {
		t.sortChildren(child)
	}
}

// Walk visits every node depth-first starting at the root, passing the
// node's depth (root = 0)
func (t *FileTree) Walk(fn func(node *FileTreeNode, depth int)) {
	t.walk(0, 0, fn)
}

func (t *FileTree) walk(i, depth int, fn func(node *FileTreeNode, depth int)) {
	fn(&t.Nodes[i], depth)
	for _, child := range t.Nodes[i].Children {
		t.walk(child, depth+1, fn)
	}
}
