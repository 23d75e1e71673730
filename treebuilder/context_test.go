package treebuilder

import "testing"

func TestFragmentContextFields(t *testing.T) {
	ctx := FragmentContext{
		TagName:   "div",
		Namespace: "html",
	}
	if ctx.TagName != "div" || ctx.Namespace != "html" {
		t.Fatalf("FragmentContext = %#v, want TagName=div Namespace=html", ctx)
	}
}

func TestFragmentContextZeroValue(t *testing.T) {
	var ctx FragmentContext
	if ctx.TagName != "" || ctx.Namespace != "" {
		t.Fatalf("zero-value FragmentContext = %#v, want both fields empty", ctx)
	}
}
