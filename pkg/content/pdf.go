package content

import (
	"fmt"
	"image"
	"math"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/webassembly"
)

const (
	pointsPerInch   = 72.0
	instanceTimeout = 30 * time.Second
)

// PDFSource renders a single PDF page. Page dimensions are known before
// rendering, and a smaller render is a real scale-on-load, so oversized
// pages can be opened at reduced size cheaply.
type PDFSource struct {
	path      string
	pdfBytes  []byte
	page      int
	dpi       int
	pool      pdfium.Pool
	pageCount int
}

// NewPDFSource opens path and checks that page (1-based) exists.
func NewPDFSource(path string, page, dpi int) (*PDFSource, error) {
	pdfBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF file: %w", err)
	}

	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  1,
		MaxTotal: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PDFium: %w", err)
	}

	src := &PDFSource{
		path:     path,
		pdfBytes: pdfBytes,
		page:     page,
		dpi:      dpi,
		pool:     pool,
	}

	err = src.withDocument(func(instance pdfium.Pdfium, doc references.FPDF_DOCUMENT) error {
		resp, err := instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{Document: doc})
		if err != nil {
			return fmt.Errorf("failed to get page count: %w", err)
		}
		src.pageCount = resp.PageCount
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, err
	}

	if page < 1 || page > src.pageCount {
		pool.Close()
		return nil, fmt.Errorf("%w: page %d of %d", ErrPageRange, page, src.pageCount)
	}

	return src, nil
}

func (p *PDFSource) withDocument(fn func(instance pdfium.Pdfium, doc references.FPDF_DOCUMENT) error) error {
	instance, err := p.pool.GetInstance(instanceTimeout)
	if err != nil {
		return fmt.Errorf("failed to get PDFium instance: %w", err)
	}
	defer instance.Close()

	doc, err := instance.OpenDocument(&requests.OpenDocument{
		File: &p.pdfBytes,
	})
	if err != nil {
		return fmt.Errorf("failed to open PDF document: %w", err)
	}
	defer instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: doc.Document})

	return fn(instance, doc.Document)
}

func (p *PDFSource) pageRef(doc references.FPDF_DOCUMENT) requests.Page {
	return requests.Page{
		ByIndex: &requests.PageByIndex{
			Document: doc,
			Index:    p.page - 1,
		},
	}
}

func (p *PDFSource) Name() string { return fmt.Sprintf("%s#page=%d", p.path, p.page) }

// PageCount returns the number of pages in the document.
func (p *PDFSource) PageCount() int { return p.pageCount }

func (p *PDFSource) ByteSize() (int64, error) { return int64(len(p.pdfBytes)), nil }

// ReadOnly is always true: a rendered page cannot be written back into the PDF.
func (p *PDFSource) ReadOnly() bool { return true }

// Dimensions returns the page size in pixels at the configured DPI.
func (p *PDFSource) Dimensions() (image.Point, bool) {
	var size image.Point
	err := p.withDocument(func(instance pdfium.Pdfium, doc references.FPDF_DOCUMENT) error {
		resp, err := instance.GetPageSize(&requests.GetPageSize{Page: p.pageRef(doc)})
		if err != nil {
			return err
		}
		size = image.Pt(toPixels(resp.Width, p.dpi), toPixels(resp.Height, p.dpi))
		return nil
	})
	if err != nil {
		return image.Point{}, false
	}
	return size, true
}

func toPixels(points float64, dpi int) int {
	return int(math.Round(points * float64(dpi) / pointsPerInch))
}

func (p *PDFSource) Decode() (image.Image, string, error) {
	img, err := p.render(p.dpi)
	if err != nil {
		return nil, "", err
	}
	return img, "pdf", nil
}

// DecodeScaled renders the page at the resolution that fits size.
func (p *PDFSource) DecodeScaled(size image.Point) (image.Image, string, error) {
	full, ok := p.Dimensions()
	if !ok || full.X == 0 || full.Y == 0 {
		return p.Decode()
	}

	scale := math.Min(float64(size.X)/float64(full.X), float64(size.Y)/float64(full.Y))
	dpi := max(1, int(math.Floor(float64(p.dpi)*scale)))

	img, err := p.render(dpi)
	if err != nil {
		return nil, "", err
	}
	return img, "pdf", nil
}

func (p *PDFSource) render(dpi int) (image.Image, error) {
	var img image.Image
	err := p.withDocument(func(instance pdfium.Pdfium, doc references.FPDF_DOCUMENT) error {
		resp, err := instance.RenderPageInDPI(&requests.RenderPageInDPI{
			Page: p.pageRef(doc),
			DPI:  dpi,
		})
		if err != nil {
			return fmt.Errorf("failed to render page %d: %w", p.page, err)
		}
		defer resp.Cleanup()

		// The render buffer is released by Cleanup.
		img = imaging.Clone(resp.Result.Image)
		return nil
	})
	return img, err
}

func (p *PDFSource) Close() error {
	if p.pool != nil {
		return p.pool.Close()
	}
	return nil
}
