package keymap

import "strings"

// Resolver maps key strings to actions.
type Resolver struct {
	bindings []Binding
	byKey    map[string]Action   // key -> action
	byAction map[Action][]string // action -> keys (for help/documentation)
}

// NewResolver creates a resolver from bindings. When two bindings share a
// key, the later one wins.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: bindings,
		byKey:    make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.byKey[key] = b.Action
		}
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
	}
	for action, keys := range r.byAction {
		r.byAction[action] = dedupe(keys)
	}
	return r
}

// ForContexts creates a resolver over the bindings of the given contexts.
func ForContexts(contexts ...string) *Resolver {
	var bindings []Binding
	for _, c := range contexts {
		bindings = append(bindings, ByContext(c)...)
	}
	return NewResolver(bindings)
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.byKey[key]
}

// KeysFor returns the keys bound to an action (for help/documentation).
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// HelpLine renders the bindings of one context as "key description" pairs
// separated by sep, in declaration order. Only the first key of each
// binding is shown.
func (r *Resolver) HelpLine(context, sep string) string {
	parts := make([]string, 0, len(r.bindings))
	for _, b := range r.bindings {
		if b.Context != context || len(b.Keys) == 0 {
			continue
		}
		parts = append(parts, b.Keys[0]+" "+b.Description)
	}
	return strings.Join(parts, sep)
}

// dedupe removes duplicate strings from a slice.
func dedupe(s []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
