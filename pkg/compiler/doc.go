// Package compiler binds a DOM-like tree to a view-model in a single pass.
//
// Compile moves the children of the mount root into a staging fragment,
// walks the fragment depth-first in pre-order, and appends the children
// back to the root in their original order. During the walk:
//
//   - element attributes carrying the v- prefix are parsed and applied
//     (v-text, v-html, v-model, v-on:<event>);
//   - non-blank text nodes have their first {{ expr }} replaced by the
//     resolved value;
//   - children are walked after their element, so content written by
//     v-text or v-html is interpolated too.
//
// The pass is transactional. Every mutation is journaled and undone if
// resolution fails or the context is cancelled, so a failed compile leaves
// the root exactly as it was.
//
// Ignored input is reported rather than hidden: a mount target that
// resolves to nothing yields StatusNoRoot, and unknown directives, v-on
// without an event name and v-on naming a missing method are listed in
// Result.Skipped.
//
// The compiler runs once. There is no observation of the data bag and no
// re-render when a bound handler later mutates it.
package compiler
