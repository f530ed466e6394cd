// Package render implements the rendering pipeline, HTML serialization
// and hydration.
//
// # Pipeline
//
// Render resolves a component (or an already-built node) into a concrete
// virtual-node tree: it follows the body delegation chain while the
// current value is still a component, then recursively resolves every
// child, so no component values remain anywhere in the result. Options
// thread the serialization target, whether state mutation is muted during
// the pass, and whether resolved nodes are saved back onto the views that
// produced them.
//
// # Serialization
//
// RenderToString/RenderToWriter serialize a rendered virtual tree to HTML
// for non-interactive transmission. OutputHTML serializes a live output
// tree, emitting data-lid node identity attributes so a client can address
// patch targets.
//
// # Hydration
//
// Hydrate binds a freshly rendered virtual tree onto a pre-existing live
// tree produced from the same serialization, attaching event handlers
// without rebuilding the output.
package render
