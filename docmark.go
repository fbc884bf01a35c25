// Package docmark converts office documents, PDFs and scanned images into
// normalized Markdown plus derived metadata.
//
// Basic usage:
//
//	result, err := docmark.Open("report.docx").Convert(ctx)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(result.Markdown)
//
// With options:
//
//	result, err := docmark.Open("scan.pdf").
//	    SummarySentences(5).
//	    TopKeywords(20).
//	    OCRLanguages("eng", "fra").
//	    Convert(ctx)
//
// For batch processing across a directory, see the batch package.
package docmark

// Open prepares a converter for the given file. Configuration methods
// return new Converter instances; Convert runs the pipeline.
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultConvertOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
