// Package meta derives metadata from converted document text: an extractive
// summary, ranked keywords, and character/word counts.
//
// The heavy lifting is delegated to three provider contracts — Summarizer,
// KeywordRanker and Segmenter — so callers can swap in model-backed
// implementations. The package ships self-contained defaults: a LexRank
// summarizer, a frequency-based keyword ranker, and a Unicode-segmentation
// tokenizer that handles text without word boundaries.
//
// Provider failure is never fatal. When a provider errors, the extractor
// records the reason on the Metadata, leaves the affected field empty, and
// returns normally.
package meta
