package entities

import "sort"

// FieldErrors отображает имя поля формы в сообщение об ошибке.
type FieldErrors map[string]string

// Add записывает сообщение для поля, заменяя прежнее.
func (f FieldErrors) Add(field, message string) {
	f[field] = message
}

// Overlay накладывает ошибки other поверх текущих: совпадающие поля заменяются.
func (f FieldErrors) Overlay(other FieldErrors) FieldErrors {
	merged := make(FieldErrors, len(f)+len(other))
	for field, msg := range f {
		merged[field] = msg
	}
	for field, msg := range other {
		merged[field] = msg
	}
	return merged
}

// Empty сообщает, что ошибок нет.
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// Fields возвращает имена полей с ошибками в отсортированном порядке.
func (f FieldErrors) Fields() []string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
