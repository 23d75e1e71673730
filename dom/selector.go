package dom

// selectorMatch is installed by the selector package's init() via
// SetSelectorMatch, avoiding an import cycle: dom cannot import selector
// (which itself walks *dom.Element trees), so selector registers itself here
// instead.
var selectorMatch = func(_ *Element, _ string) ([]*Element, error) {
	return nil, nil
}

// selectorMatchFirst is implemented by the selector package and set via SetSelectorMatchFirst.
var selectorMatchFirst = func(_ *Element, _ string) (*Element, error) {
	return nil, nil
}

// SetSelectorMatch sets the function used by Element.Query.
// This is called by the selector package during initialization.
func SetSelectorMatch(fn func(root *Element, selector string) ([]*Element, error)) {
	selectorMatch = fn
}

// SetSelectorMatchFirst sets the function used by Element.QueryFirst.
// This is called by the selector package during initialization.
func SetSelectorMatchFirst(fn func(root *Element, selector string) (*Element, error)) {
	selectorMatchFirst = fn
}
