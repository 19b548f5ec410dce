package domain

// Optional хранит значение, которое может отсутствовать
type Optional[T any] struct {
	value T
	set   bool
}

// Some создает заданное значение
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None создает отсутствующее значение
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// FromPtr превращает nil в None, иначе в Some(*p)
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// Get возвращает значение и признак его наличия
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet сообщает, задано ли значение
func (o Optional[T]) IsSet() bool {
	return o.set
}

// Or возвращает значение или fallback, если оно не задано
func (o Optional[T]) Or(fallback T) T {
	if o.set {
		return o.value
	}
	return fallback
}
