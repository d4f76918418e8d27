// Package proctree reads the process tree from procfs. It answers the one
// question navigation cares about: which processes run underneath the focused
// window, so the right editor or multiplexer instance can be addressed.
package proctree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Tree is a point-in-time snapshot of the process table. It is never cached
// across invocations; the table changes under us constantly.
type Tree struct {
	root     string
	comm     map[int]string
	parent   map[int]int
	children map[int][]int
}

// Option configures a snapshot.
type Option func(*Tree)

// WithRoot overrides the procfs mount point. Tests point this at a fixture
// directory.
func WithRoot(root string) Option {
	return func(t *Tree) {
		t.root = root
	}
}

// Snapshot scans procfs once and builds the child index. Processes that exit
// mid-scan are skipped.
func Snapshot(opts ...Option) (*Tree, error) {
	t := &Tree{
		root:     "/proc",
		comm:     make(map[int]string),
		parent:   make(map[int]int),
		children: make(map[int][]int),
	}
	for _, opt := range opts {
		opt(t)
	}

	entries, err := os.ReadDir(t.root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", t.root, err)
	}
	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		comm, ppid, err := t.readStat(pid)
		if err != nil {
			continue
		}
		t.comm[pid] = comm
		t.parent[pid] = ppid
		t.children[ppid] = append(t.children[ppid], pid)
	}
	for _, kids := range t.children {
		sort.Ints(kids)
	}
	return t, nil
}

// readStat parses pid, comm and ppid out of /proc/<pid>/stat. The comm field
// is parenthesized and may itself contain spaces and parentheses, so the
// parse anchors on the last closing parenthesis.
func (t *Tree) readStat(pid int) (string, int, error) {
	data, err := os.ReadFile(filepath.Join(t.root, strconv.Itoa(pid), "stat"))
	if err != nil {
		return "", 0, err
	}
	s := string(data)
	open := strings.IndexByte(s, '(')
	close := strings.LastIndexByte(s, ')')
	if open < 0 || close < open {
		return "", 0, fmt.Errorf("malformed stat for pid %d", pid)
	}
	comm := s[open+1 : close]
	rest := strings.Fields(s[close+1:])
	if len(rest) < 2 {
		return "", 0, fmt.Errorf("malformed stat for pid %d", pid)
	}
	ppid, err := strconv.Atoi(rest[1])
	if err != nil {
		return "", 0, fmt.Errorf("malformed ppid for pid %d: %w", pid, err)
	}
	return comm, ppid, nil
}

// Comm returns the command name of a pid, or empty when unknown.
func (t *Tree) Comm(pid int) string {
	return t.comm[pid]
}

// Parent returns the parent pid, or zero when unknown.
func (t *Tree) Parent(pid int) int {
	return t.parent[pid]
}

// Children returns the direct children of a pid in ascending order.
func (t *Tree) Children(pid int) []int {
	return t.children[pid]
}

// Descendants returns every process below pid in breadth-first order,
// excluding pid itself.
func (t *Tree) Descendants(pid int) []int {
	var result []int
	queue := append([]int(nil), t.children[pid]...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		result = append(result, next)
		queue = append(queue, t.children[next]...)
	}
	return result
}

// Find returns the first process at or below root whose command name matches
// one of names, in breadth-first order. The shallowest match wins, so a shell
// running under the wanted process never shadows it.
func (t *Tree) Find(root int, names ...string) (int, bool) {
	match := func(pid int) bool {
		comm := t.comm[pid]
		for _, name := range names {
			if comm == name {
				return true
			}
		}
		return false
	}
	if match(root) {
		return root, true
	}
	for _, pid := range t.Descendants(root) {
		if match(pid) {
			return pid, true
		}
	}
	return 0, false
}

// Environ reads /proc/<pid>/environ into a map.
func (t *Tree) Environ(pid int) (map[string]string, error) {
	data, err := os.ReadFile(filepath.Join(t.root, strconv.Itoa(pid), "environ"))
	if err != nil {
		return nil, fmt.Errorf("read environ of pid %d: %w", pid, err)
	}
	env := make(map[string]string)
	for _, entry := range strings.Split(string(data), "\x00") {
		if entry == "" {
			continue
		}
		key, value, found := strings.Cut(entry, "=")
		if !found || key == "" {
			continue
		}
		env[key] = value
	}
	return env, nil
}

// Cwd returns the working directory of a pid.
func (t *Tree) Cwd(pid int) (string, error) {
	target, err := os.Readlink(filepath.Join(t.root, strconv.Itoa(pid), "cwd"))
	if err != nil {
		return "", fmt.Errorf("read cwd of pid %d: %w", pid, err)
	}
	return target, nil
}
