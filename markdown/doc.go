// Package markdown renders a document tree to Markdown text and strips
// Markdown back to plain text.
//
// Rendering is deterministic: the same tree always produces byte-identical
// output, and nothing outside the tree is consulted. Stripping uses a real
// Markdown parser rather than regular expressions so that the plain text
// handed to metadata extraction matches what a reader of the rendered
// document would see.
package markdown
