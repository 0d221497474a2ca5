package calendar

// Annotator supplies the free text shown inside a day cell. It is called for
// every cell on each rebuild, so implementations should answer from memory.
type Annotator interface {
	Contents(d Date) string
}

// AnnotatorFunc adapts a function to Annotator.
type AnnotatorFunc func(d Date) string

// Contents implements Annotator.
func (f AnnotatorFunc) Contents(d Date) string {
	if f == nil {
		return ""
	}
	return f(d)
}

// SelectionListener is told about every selection change after the grid has
// been rebuilt.
type SelectionListener interface {
	OnSelectionChanged(d Date)
}

// SelectionFunc adapts a function to SelectionListener.
type SelectionFunc func(d Date)

// OnSelectionChanged implements SelectionListener.
func (f SelectionFunc) OnSelectionChanged(d Date) {
	if f != nil {
		f(d)
	}
}
