package task

// DynamicValueList is an ordered sequence of DynamicValues. Order is
// execution order: later members may read transfer variables written by
// earlier ones.
type DynamicValueList struct {
	values []*DynamicValue
}

// NewDynamicValueList creates an empty list.
func NewDynamicValueList() *DynamicValueList {
	return &DynamicValueList{}
}

// Append adds a value at the end of the list.
func (l *DynamicValueList) Append(v *DynamicValue) {
	l.values = append(l.values, v)
}

// Len returns the number of members.
func (l *DynamicValueList) Len() int {
	return len(l.values)
}

// Values returns the members in insertion order. The returned slice is
// shared; callers must not reorder it.
func (l *DynamicValueList) Values() []*DynamicValue {
	return l.values
}

// EvaluateAll evaluates every member in insertion order, unconditionally
// and without short-circuit. The list carries no aggregate status;
// callers scan members for Error.
func (l *DynamicValueList) EvaluateAll(ctx *Context) {
	for _, v := range l.values {
		v.Evaluate(ctx)
	}
}
