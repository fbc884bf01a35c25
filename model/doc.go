// Package model provides the intermediate representation (IR) for document
// conversion.
//
// This package defines the types shared by every stage of the pipeline. Format
// providers (docx, pdf, ocr) produce ordered or positioned [ContentBlock]
// sequences; the layout package folds those into a [DocumentTree]; the markdown
// package serializes the tree.
//
// # Content blocks
//
// A [ContentBlock] is one atomic unit of extracted content prior to structural
// grouping. Its [BlockKind] is a closed set:
//
//   - [KindHeading] - a heading with an optional level
//   - [KindParagraph] - body text
//   - [KindListItem] - one list entry with a depth
//   - [KindTableCell] - one table cell with row/column coordinates
//   - [KindImageRef] - a reference to an image by identifier
//
// Blocks from stream-ordered sources (DOCX) carry a sequence index. Blocks from
// positioned sources (OCR) carry a page number and a [BBox]; reading order for
// those is resolved by the layout package.
//
// # Document tree
//
// A [DocumentTree] is an ordered sequence of [Node] values. The concrete node
// types are [Heading], [Paragraph], [ListGroup], [Table], and
// [ImagePlaceholder]. A tree is built exactly once from a block sequence and is
// not mutated afterward.
//
// # Geometry
//
// [BBox] supplies the position arithmetic used for band grouping and column
// alignment: overlap ratios, unions, and edge accessors.
package model
