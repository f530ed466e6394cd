// Package vdom provides the virtual node tree for Lattice.
//
// A VNode describes one node of the desired UI: an element with styles,
// attributes, event handlers and ordered children, a text node, or a
// fragment grouping children without a wrapper. Component values embedded
// in a tree are carried transiently as KindComponent nodes until the
// rendering pipeline (pkg/render) resolves them; a rendered tree contains
// only Element, Text and Fragment nodes.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Attr{"id", Str("main")}, Style{"color", Hex("#333")},
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	    On("click", handler),
//	)
//
// # Live output binding
//
// A committed VNode may be bound to a node of the live output tree through
// the OutputNode capability interface. Exactly one VNode owns a given live
// node at a time; the reconciler (pkg/reconcile) transfers the binding from
// the previously committed tree to the next one.
package vdom
