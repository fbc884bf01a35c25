// Package layout reconstructs document structure from extracted content
// blocks.
//
// The [Reconstructor] is the single entry point. It accepts an ordered
// sequence of [model.ContentBlock] values and produces a [model.DocumentTree]:
//
//	tree := layout.NewReconstructor().Reconstruct(blocks)
//
// Two input shapes are handled:
//
//   - Stream-ordered blocks (native document formats such as DOCX) already
//     arrive in reading order. Reconstruction is a direct fold: consecutive
//     list items and table cells are grouped, headings open section scopes.
//
//   - Positioned blocks (OCR output) arrive as spatial fragments. They are
//     first resolved into reading order: grouped by page, then into vertical
//     bands (blocks whose vertical ranges overlap beyond a configurable
//     threshold share a band), then left-to-right within a band. Contiguous
//     bands whose horizontal positions cluster into two or more recurring
//     columns are grouped into tables; bands that fail clustering degrade to
//     paragraphs. Headings are inferred from font-size signals against the
//     body-text baseline, falling back to a short-standalone-line heuristic
//     when no style signal is available.
//
// Reconstruction is a pure transformation: it never consults anything beyond
// the input blocks and has no side effects. An empty block sequence yields an
// empty tree, not an error.
package layout
