package model

// UIDirective instructs the external rendering layer which component to
// render and with what data. Props are treated as opaque serializable
// payloads; the core validates their shape at construction, not here.
type UIDirective struct {
	ID            string `json:"id"`
	ComponentName string `json:"name"`
	Props         any    `json:"props"`
}

// UIUpdate is one element of a node's UI output: either an upsert of a
// directive or a tombstone removing the directive with the given id.
type UIUpdate struct {
	Directive UIDirective
	Remove    bool
}

// UpsertUI wraps a directive into an upsert update.
func UpsertUI(d UIDirective) UIUpdate {
	return UIUpdate{Directive: d}
}

// RemoveUI builds a tombstone update for the directive with the given id.
func RemoveUI(id string) UIUpdate {
	return UIUpdate{Directive: UIDirective{ID: id}, Remove: true}
}

// ApplyUI is the reducer for UI directives: upsert by id (a directive with an
// existing id replaces the prior one in place, preserving insertion order for
// iteration) and tombstone removal. Lookup is by id.
func ApplyUI(existing []UIDirective, updates []UIUpdate) []UIDirective {
	if len(updates) == 0 {
		return existing
	}
	out := make([]UIDirective, len(existing))
	copy(out, existing)

	for _, u := range updates {
		if u.Remove {
			for i := range out {
				if out[i].ID == u.Directive.ID {
					out = append(out[:i], out[i+1:]...)
					break
				}
			}
			continue
		}
		replaced := false
		for i := range out {
			if out[i].ID == u.Directive.ID {
				out[i] = u.Directive
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, u.Directive)
		}
	}
	return out
}
