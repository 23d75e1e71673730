// Package treebuilder implements the HTML5 tree construction algorithm.
package treebuilder

// FragmentContext names the element a fragment is being parsed as the
// innerHTML-equivalent of, e.g. {"tr", "html"} when parsing `<td>` rows
// that must land directly under a table row rather than a document body.
type FragmentContext struct {
	TagName   string
	Namespace string
}
