package domain

// Team is an ad-hoc ordered group of users where no two members share the
// same (domain, available) pair.
type Team struct {
	Members []User
}

// Accepts reports whether u can join without duplicating a (domain, available) pair.
func (t *Team) Accepts(u User) bool {
	for _, m := range t.Members {
		if m.Domain == u.Domain && m.Available == u.Available {
			return false
		}
	}
	return true
}

// Add appends u when Accepts allows it and reports whether it was added.
func (t *Team) Add(u User) bool {
	if !t.Accepts(u) {
		return false
	}
	t.Members = append(t.Members, u)
	return true
}

// Snapshot copies the current members.
func (t *Team) Snapshot() []User {
	out := make([]User, len(t.Members))
	copy(out, t.Members)
	return out
}

// Len returns the member count.
func (t *Team) Len() int {
	return len(t.Members)
}
