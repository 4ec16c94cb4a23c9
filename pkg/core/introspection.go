package core

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Collections map[string]int `json:"collections"`
	Hooks       []string       `json:"hooks,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cols := make(map[string]int, len(s.records)+len(s.pages))
	for name, c := range s.records {
		cols[name] = len(c.keys)
	}
	for name, c := range s.pages {
		cols[name] = len(c.keys)
	}

	hooks := make([]string, 0, len(s.hooks))
	for _, h := range s.hooks {
		hooks = append(hooks, h.collection+":"+h.pattern)
	}
	sort.Strings(hooks)

	return StoreState{Collections: cols, Hooks: hooks}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

// BuildState exposes the state of a build pass.
type BuildState struct {
	RunID    string     `json:"run_id"`
	Ran      bool       `json:"ran"`
	Error    string     `json:"error,omitempty"`
	Finished *time.Time `json:"finished,omitempty"`
	PageSize int        `json:"page_size"`
	SortKey  string     `json:"sort_key"`
	Store    StoreState `json:"store"`
}

// State implements introspection.Introspectable.
func (b *Build) State() any {
	st := BuildState{
		RunID:    b.ID,
		Ran:      b.ran,
		PageSize: b.config.Page.PageSize,
		SortKey:  b.config.Page.SortKey,
		Store:    b.Store.State().(StoreState),
	}
	if b.lastErr != nil {
		st.Error = b.lastErr.Error()
	}
	if !b.finished.IsZero() {
		t := b.finished
		st.Finished = &t
	}
	return st
}

// ComponentType implements introspection.Component.
func (b *Build) ComponentType() string {
	return "build"
}

// stateNode is the tree shape read by introspection.TreeDiagram.
// Status values match the classes of introspection.DefaultStyles.
type stateNode struct {
	Name     string
	Status   string
	Metadata map[string]string
	Children []stateNode
}

// Diagram renders the state of c as a Mermaid graph. Builds and stores are
// expanded into their collections and hooks; other components become a
// single node.
func Diagram(c introspection.Introspectable) string {
	config := introspection.DefaultDiagramConfig()
	config.SecondaryID = "broadsheet"
	config.SecondaryLabel = "Build Topology"
	config.NodeLabeler = nodeLabel

	root := stateNode{Name: "component", Status: "running"}
	if comp, ok := c.(introspection.Component); ok {
		root.Name = comp.ComponentType()
	}
	switch st := c.State().(type) {
	case BuildState:
		root = buildTree(st)
	case StoreState:
		root = storeTree(st)
	}
	return introspection.TreeDiagram(root, config)
}

func buildTree(st BuildState) stateNode {
	status := "finished"
	switch {
	case !st.Ran:
		status = "pending"
	case st.Error != "":
		status = "failed"
	}

	md := map[string]string{
		"type":      "supervisor",
		"run_id":    st.RunID,
		"page_size": strconv.Itoa(st.PageSize),
		"sort_key":  st.SortKey,
	}
	if st.Error != "" {
		md["error"] = st.Error
	}
	return stateNode{
		Name:     "build",
		Status:   status,
		Metadata: md,
		Children: []stateNode{storeTree(st.Store)},
	}
}

func storeTree(st StoreState) stateNode {
	names := make([]string, 0, len(st.Collections))
	for name := range st.Collections {
		names = append(names, name)
	}
	sort.Strings(names)

	children := make([]stateNode, 0, len(names)+len(st.Hooks))
	for _, name := range names {
		status := "pending"
		if st.Collections[name] > 0 {
			status = "finished"
		}
		children = append(children, stateNode{
			Name:   name,
			Status: status,
			Metadata: map[string]string{
				"type":    "container",
				"entries": strconv.Itoa(st.Collections[name]),
			},
		})
	}
	for _, h := range st.Hooks {
		children = append(children, stateNode{
			Name:     "onLoad " + h,
			Status:   "running",
			Metadata: map[string]string{"type": "func"},
		})
	}

	return stateNode{
		Name:     "store",
		Status:   "running",
		Metadata: map[string]string{"type": "process"},
		Children: children,
	}
}

// labelKeys are the metadata entries shown on a node, in order.
var labelKeys = []string{"entries", "run_id", "page_size", "sort_key", "error"}

func nodeLabel(name, status string, _ int, md map[string]string, icon string) string {
	parts := []string{fmt.Sprintf("<b>%s %s</b>", icon, escapeLabel(name))}
	if status != "" {
		parts = append(parts, "Status: "+status)
	}
	for _, k := range labelKeys {
		if v, ok := md[k]; ok && v != "" {
			parts = append(parts, k+": "+escapeLabel(v))
		}
	}
	return strings.Join(parts, "<br/>")
}

// escapeLabel keeps arbitrary text from closing a quoted Mermaid label.
func escapeLabel(s string) string {
	return strings.NewReplacer(`"`, "#quot;", "\r", " ", "\n", " ").Replace(s)
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
var _ introspection.Introspectable = (*Build)(nil)
var _ introspection.Component = (*Build)(nil)
