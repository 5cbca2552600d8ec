package quote

// Overridable is a computed value that a caller may pin to a manual one. The
// pinned value only changes what is exposed; Computed always reflects the last
// computation.
type Overridable[T any] struct {
	computed T
	override *T
}

// Value is override ?? computed.
func (o Overridable[T]) Value() T {
	if o.override != nil {
		return *o.override
	}
	return o.computed
}

func (o Overridable[T]) Computed() T {
	return o.computed
}

// Override returns the pinned value, if any.
func (o Overridable[T]) Override() (T, bool) {
	if o.override == nil {
		var zero T
		return zero, false
	}
	return *o.override, true
}

func (o *Overridable[T]) SetComputed(v T) {
	o.computed = v
}

func (o *Overridable[T]) Pin(v T) {
	o.override = &v
}

func (o *Overridable[T]) Clear() {
	o.override = nil
}
