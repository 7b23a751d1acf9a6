package pdf

import (
	"bytes"
	"fmt"
	"image/png"
	"sync"

	"github.com/gen2brain/go-fitz"
)

// Document is an open PDF file. It is owned by exactly one caller at a
// time and must be closed before the underlying file is replaced.
//
// Design decision: extracted page text is cached per page because the
// classifier may consult it more than once, while rendered images are
// never cached: a 200 DPI render of a letter-size page is several
// megabytes, and each page's image is used exactly once (as OCR input).
type Document struct {
	path string
	doc  *fitz.Document

	mu    sync.Mutex
	texts []*string
}

// Open opens the PDF at path for reading.
func Open(path string) (*Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}
	return &Document{
		path:  path,
		doc:   doc,
		texts: make([]*string, doc.NumPage()),
	}, nil
}

// Path returns the file path the document was opened from.
func (d *Document) Path() string { return d.path }

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int { return d.doc.NumPage() }

// Page returns a read-only view of the page at the given zero-based
// index. The view stays valid until the document is closed.
func (d *Document) Page(index int) *Page {
	return &Page{doc: d, index: index}
}

// Close releases the underlying MuPDF document. The file handle must be
// released before the file can be atomically replaced on platforms that
// lock open files.
func (d *Document) Close() error {
	return d.doc.Close()
}

// Page is a read-only view of a single page. Its two derived views, the
// extracted text layer and a rasterized image, are computed lazily.
type Page struct {
	doc   *Document
	index int
}

// Index returns the zero-based page index within the document.
func (p *Page) Index() int { return p.index }

// Text extracts the embedded text layer of the page. No OCR is
// performed. The result is cached on first extraction.
func (p *Page) Text() (string, error) {
	p.doc.mu.Lock()
	defer p.doc.mu.Unlock()

	if cached := p.doc.texts[p.index]; cached != nil {
		return *cached, nil
	}

	text, err := p.doc.doc.Text(p.index)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from page %d: %w", p.index, err)
	}
	p.doc.texts[p.index] = &text
	return text, nil
}

// RenderPNG rasterizes the page at the given resolution and returns it
// PNG-encoded, ready to be handed to an OCR engine.
func (p *Page) RenderPNG(dpi float64) ([]byte, error) {
	p.doc.mu.Lock()
	img, err := p.doc.doc.ImageDPI(p.index, dpi)
	p.doc.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize page %d at %.0f dpi: %w", p.index, dpi, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode page %d as PNG: %w", p.index, err)
	}
	return buf.Bytes(), nil
}
