// Package router maps navigation paths to layouts and views.
//
// A Table is built once from a list of layouts and is read-only afterwards, so
// it can be shared between goroutines.
package router

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// ErrNoRoute is returned by Resolve when no route matches the path
var ErrNoRoute = errors.New("no route matches path")

// Route binds a path pattern to a view component. Patterns use ":name"
// segments to capture parameters.
type Route struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	Component string `json:"component"`
}

// Layout is a shell wrapping child routes that share a path prefix
type Layout struct {
	Path      string  `json:"path"`
	Component string  `json:"component"`
	Children  []Route `json:"children"`
}

// Entry is a flattened route with its full pattern and owning layout
type Entry struct {
	Layout    string `json:"layout"`
	Pattern   string `json:"pattern"`
	Name      string `json:"name"`
	Component string `json:"component"`

	segments []string
}

// Match is the result of a successful Resolve
type Match struct {
	Layout    string            `json:"layout"`
	Route     string            `json:"route"`
	Component string            `json:"component"`
	Pattern   string            `json:"pattern"`
	Path      string            `json:"path"`
	Params    map[string]string `json:"params"`
}

// Param returns the captured parameter or an empty string
func (m Match) Param(name string) string {
	return m.Params[name]
}

// Table is an immutable set of layouts and their flattened routes
type Table struct {
	layouts []Layout
	entries []Entry
	byName  map[string]int
}

// New builds a table. Child paths are joined onto their layout prefix unless
// they are absolute. Route names must be unique across the whole table.
func New(layouts ...Layout) (*Table, error) {
	t := &Table{byName: make(map[string]int)}
	for _, l := range layouts {
		if !strings.HasPrefix(l.Path, "/") {
			return nil, errors.Errorf("layout %s: path %q must be absolute", l.Component, l.Path)
		}
		if l.Component == "" {
			return nil, errors.Errorf("layout %q: component is required", l.Path)
		}
		children := append([]Route(nil), l.Children...)
		for _, r := range children {
			if r.Name == "" {
				return nil, errors.Errorf("route %q in layout %s has no name", r.Path, l.Component)
			}
			if _, dup := t.byName[r.Name]; dup {
				return nil, errors.Errorf("duplicate route name %q", r.Name)
			}
			if r.Component == "" {
				return nil, errors.Errorf("route %s: component is required", r.Name)
			}
			pattern := joinPath(l.Path, r.Path)
			segments := splitPath(pattern)
			params := make(map[string]struct{})
			for _, seg := range segments {
				if !strings.HasPrefix(seg, ":") {
					continue
				}
				name := seg[1:]
				if name == "" {
					return nil, errors.Errorf("route %s: empty parameter name in %q", r.Name, pattern)
				}
				if _, dup := params[name]; dup {
					return nil, errors.Errorf("route %s: parameter %q repeated", r.Name, name)
				}
				params[name] = struct{}{}
			}
			t.byName[r.Name] = len(t.entries)
			t.entries = append(t.entries, Entry{
				Layout:    l.Component,
				Pattern:   pattern,
				Name:      r.Name,
				Component: r.Component,
				segments:  segments,
			})
		}
		l.Children = children
		t.layouts = append(t.layouts, l)
	}
	return t, nil
}

// MustNew is like New but panics on error
func MustNew(layouts ...Layout) *Table {
	t, err := New(layouts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Routes returns the flattened table in declaration order
func (t *Table) Routes() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Layouts returns the declared layouts
func (t *Table) Layouts() []Layout {
	out := make([]Layout, len(t.layouts))
	for i, l := range t.layouts {
		l.Children = append([]Route(nil), l.Children...)
		out[i] = l
	}
	return out
}

// Lookup returns the entry registered under name
func (t *Table) Lookup(name string) (Entry, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Resolve selects the layout and route for path. Query strings and fragments
// are ignored, one trailing slash is tolerated and static segments compare
// case-insensitively. The first matching route in declaration order wins.
func (t *Table) Resolve(path string) (Match, error) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	segments := splitPath(path)
	for _, e := range t.entries {
		params, ok := matchSegments(e.segments, segments)
		if !ok {
			continue
		}
		return Match{
			Layout:    e.Layout,
			Route:     e.Name,
			Component: e.Component,
			Pattern:   e.Pattern,
			Path:      path,
			Params:    params,
		}, nil
	}
	return Match{Path: path}, errors.Wrapf(ErrNoRoute, "%s", path)
}

// URL builds the path of the named route, substituting params.
func (t *Table) URL(name string, params map[string]string) (string, error) {
	e, ok := t.Lookup(name)
	if !ok {
		return "", errors.Errorf("unknown route %q", name)
	}
	if len(e.segments) == 0 {
		return "/", nil
	}
	var b strings.Builder
	for _, seg := range e.segments {
		b.WriteByte('/')
		if !strings.HasPrefix(seg, ":") {
			b.WriteString(seg)
			continue
		}
		v, ok := params[seg[1:]]
		if !ok || v == "" {
			return "", errors.Errorf("route %s: missing parameter %q", name, seg[1:])
		}
		b.WriteString(url.PathEscape(v))
	}
	return b.String(), nil
}

func matchSegments(pattern, path []string) (map[string]string, bool) {
	if len(pattern) != len(path) {
		return nil, false
	}
	params := make(map[string]string)
	for i, seg := range pattern {
		if strings.HasPrefix(seg, ":") {
			v, err := url.PathUnescape(path[i])
			if err != nil || v == "" {
				return nil, false
			}
			params[seg[1:]] = v
			continue
		}
		if !strings.EqualFold(seg, path[i]) {
			return nil, false
		}
	}
	return params, true
}

func joinPath(prefix, child string) string {
	if strings.HasPrefix(child, "/") {
		return child
	}
	if child == "" {
		return prefix
	}
	return strings.TrimSuffix(prefix, "/") + "/" + child
}

// splitPath splits a path into segments, dropping one trailing slash.
// "/" yields no segments; an empty inner segment is kept so "//x" does not
// match "/x".
func splitPath(path string) []string {
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s -> %s/%s", e.Name, e.Pattern, e.Layout, e.Component)
}
