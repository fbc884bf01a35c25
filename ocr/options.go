package ocr

// PageSegMode represents page segmentation modes for OCR.
// These control how Tesseract analyzes the page layout.
type PageSegMode int

// Page segmentation modes.
const (
	PSM_OSD_ONLY               PageSegMode = 0  // Orientation and script detection only
	PSM_AUTO_OSD               PageSegMode = 1  // Automatic with OSD
	PSM_AUTO_ONLY              PageSegMode = 2  // Automatic, no OSD or OCR
	PSM_AUTO                   PageSegMode = 3  // Fully automatic (default)
	PSM_SINGLE_COLUMN          PageSegMode = 4  // Single column of variable sizes
	PSM_SINGLE_BLOCK_VERT_TEXT PageSegMode = 5  // Single uniform block of vertically aligned text
	PSM_SINGLE_BLOCK           PageSegMode = 6  // Single uniform block of text
	PSM_SINGLE_LINE            PageSegMode = 7  // Single text line
	PSM_SINGLE_WORD            PageSegMode = 8  // Single word
	PSM_CIRCLE_WORD            PageSegMode = 9  // Single word in a circle
	PSM_SINGLE_CHAR            PageSegMode = 10 // Single character
	PSM_SPARSE_TEXT            PageSegMode = 11 // Find as much text as possible
	PSM_SPARSE_TEXT_OSD        PageSegMode = 12 // Sparse text with OSD
	PSM_RAW_LINE               PageSegMode = 13 // Treat image as single text line
)

// Options holds configuration for the OCR client.
type Options struct {
	// Languages lists traineddata languages, e.g. "eng", "fra".
	Languages []string

	// PageSegMode controls Tesseract's page layout analysis.
	PageSegMode PageSegMode

	// DataPath points at a local traineddata directory. Empty uses the
	// system default, so models resolve locally without any network access.
	DataPath string

	// DPI overrides the assumed image resolution when source images carry
	// no DPI metadata.
	DPI int

	// PreferGPU is an advisory device hint for engines that support GPU
	// inference. The Tesseract backend runs on CPU and records the hint
	// without acting on it.
	PreferGPU bool
}

// DefaultOptions returns sensible defaults for OCR.
func DefaultOptions() Options {
	return Options{
		Languages:   []string{"eng"},
		PageSegMode: PSM_AUTO,
	}
}
