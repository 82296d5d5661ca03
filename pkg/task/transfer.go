package task

// TransferVariable is a single (name, value) pair carried between tasks.
type TransferVariable struct {
	Name  string
	Value interface{}
}

// TransferVariableList is an ordered, append-only accumulator of
// (name, value) pairs. Duplicate names are allowed: lookup returns the
// most-recently-appended value for a name, while every entry remains in
// place for ordered iteration and audit.
type TransferVariableList struct {
	entries []TransferVariable
}

// NewTransferVariableList creates an empty list.
func NewTransferVariableList() *TransferVariableList {
	return &TransferVariableList{}
}

// Append adds a (name, value) pair. Existing entries for the same name
// are never replaced or removed.
func (l *TransferVariableList) Append(name string, value interface{}) {
	l.entries = append(l.entries, TransferVariable{Name: name, Value: value})
}

// Lookup returns the value from the most recent append for name.
// The second return is false when the name was never appended.
func (l *TransferVariableList) Lookup(name string) (interface{}, bool) {
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].Name == name {
			return l.entries[i].Value, true
		}
	}
	return nil, false
}

// Len returns the number of entries, counting duplicates.
func (l *TransferVariableList) Len() int {
	return len(l.entries)
}

// Entries returns a copy of all entries in append order.
func (l *TransferVariableList) Entries() []TransferVariable {
	out := make([]TransferVariable, len(l.entries))
	copy(out, l.entries)
	return out
}

// Snapshot returns a name-to-value map with last-write-wins semantics,
// suitable for exposing the variables to an expression environment.
func (l *TransferVariableList) Snapshot() map[string]interface{} {
	out := make(map[string]interface{}, len(l.entries))
	for _, e := range l.entries {
		out[e.Name] = e.Value
	}
	return out
}
