package export

import (
	"context"
	"image"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// State names the pipeline stages. Transitions are strictly forward; every
// stage failure advances to that stage's fallback rather than surfacing an
// error to the caller.
type State string

const (
	StateIdle          State = "idle"
	StateCapturing     State = "capturing"
	StateAssembling    State = "assembling"
	StateDone          State = "done"
	StateFallback      State = "fallback"
	StatePrintFallback State = "print_fallback"
)

// Result modes.
const (
	ModePDF   = "pdf"
	ModePrint = "print"
)

// Result is the outcome of an export run. Mode "pdf" carries the document
// bytes; mode "print" carries a print-ready HTML page and a user-visible
// message instead.
type Result struct {
	Mode      string `json:"mode"`
	Filename  string `json:"filename"`
	PDF       []byte `json:"-"`
	HTML      string `json:"-"`
	Message   string `json:"message,omitempty"`
	Thumbnail []byte `json:"-"`
}

// ThumbnailSink persists the thumbnail generated from a successful capture.
// Sink failures never fail the export.
type ThumbnailSink interface {
	SaveThumbnail(ctx context.Context, resume *types.Resume, pngData []byte) error
}

// Pipeline runs exports. A given resume has at most one export in flight;
// concurrent requests for the same record get ErrExportInFlight.
type Pipeline struct {
	backend Backend
	thumbs  ThumbnailSink

	mu       sync.Mutex
	inflight map[uuid.UUID]struct{}
}

// NewPipeline creates an export pipeline over a browser backend. The
// thumbnail sink is optional.
func NewPipeline(backend Backend, thumbs ThumbnailSink) *Pipeline {
	return &Pipeline{
		backend:  backend,
		thumbs:   thumbs,
		inflight: make(map[uuid.UUID]struct{}),
	}
}

// Export runs the full chain for one resume: render, strip excluded controls,
// capture, assemble, with the fallback ladder underneath. The only errors it
// returns are the in-flight rejection and a preview render failure; everything
// downstream degrades to a Result instead.
func (p *Pipeline) Export(ctx context.Context, resume *types.Resume) (*Result, error) {
	if !p.acquire(resume.ID) {
		return nil, ErrExportInFlight
	}
	defer p.release(resume.ID)

	html, err := rendering.Render(resume, resume.Template.Theme)
	if err != nil {
		// Without a preview document no stage, print fallback included,
		// has anything to work with.
		return nil, err
	}

	filename := Filename(resume.ProfileInfo.FullName, rendering.StyleFor(resume.Template.Theme).ID, time.Now())

	stripped, err := stripExcluded(html)
	if err != nil {
		log.Printf("[EXPORT] strip failed for resume %s: %v", resume.ID, err)
		stripped = html
	}

	// Capturing
	capture, err := p.backend.Capture(ctx, stripped, 2, true)
	if err != nil {
		log.Printf("[EXPORT] capture failed for resume %s, trying simple capture: %v", resume.ID, err)
		return p.fallback(ctx, resume, html, stripped, filename)
	}
	p.saveThumbnail(ctx, resume, capture)

	// Assembling
	pdf, err := p.assemble(ctx, capture)
	if err != nil {
		log.Printf("[EXPORT] assembly failed for resume %s, trying simple capture: %v", resume.ID, err)
		return p.fallback(ctx, resume, html, stripped, filename)
	}

	return &Result{Mode: ModePDF, Filename: filename, PDF: pdf}, nil
}

// assemble runs the primary composition: fitted page raster, PNG, printed to
// PDF.
func (p *Pipeline) assemble(ctx context.Context, capture image.Image) ([]byte, error) {
	page, err := composePage(capture)
	if err != nil {
		return nil, err
	}
	encoded, err := encodePNG(page)
	if err != nil {
		return nil, err
	}
	return p.backend.PrintHTML(ctx, pageDocument("image/png", encoded))
}

// fallback recaptures with the simple configuration and pins the JPEG
// full-width at the top of the page. If that fails too the export degrades to
// the print document.
func (p *Pipeline) fallback(ctx context.Context, resume *types.Resume, html, stripped, filename string) (*Result, error) {
	capture, err := p.backend.Capture(ctx, stripped, 1, false)
	if err != nil {
		log.Printf("[EXPORT] simple capture failed for resume %s, degrading to print: %v", resume.ID, err)
		return p.printFallback(resume, html, filename), nil
	}
	p.saveThumbnail(ctx, resume, capture)

	page, err := composeFallbackPage(capture)
	if err != nil {
		return p.printFallback(resume, html, filename), nil
	}
	encoded, err := encodeJPEG(page)
	if err != nil {
		return p.printFallback(resume, html, filename), nil
	}
	pdf, err := p.backend.PrintHTML(ctx, pageDocument("image/jpeg", encoded))
	if err != nil {
		log.Printf("[EXPORT] fallback print failed for resume %s, degrading to print: %v", resume.ID, err)
		return p.printFallback(resume, html, filename), nil
	}

	return &Result{Mode: ModePDF, Filename: filename, PDF: pdf}, nil
}

// printFallbackMessage is shown to the user when PDF generation is
// unavailable and the browser print dialog takes over.
const printFallbackMessage = "PDF generation is unavailable right now. Your browser's print dialog will open instead; choose \"Save as PDF\" there."

// printFallback produces the terminal degradation: the preview document with
// a deferred window.print() so the notice renders before the dialog opens.
func (p *Pipeline) printFallback(resume *types.Resume, html, filename string) *Result {
	notice := `<div class="print:hidden" style="background:#fef3c7;border-bottom:1px solid #f59e0b;padding:10px 16px;font-family:sans-serif;font-size:13px;">` +
		printFallbackMessage + `</div>
<script>setTimeout(function(){ window.print(); }, 1000);</script>
</body>`
	printable := strings.Replace(html, "</body>", notice, 1)

	return &Result{
		Mode:     ModePrint,
		Filename: filename,
		HTML:     printable,
		Message:  printFallbackMessage,
	}
}

// saveThumbnail derives and persists the dashboard thumbnail from a capture.
// Best effort: failures are logged and swallowed.
func (p *Pipeline) saveThumbnail(ctx context.Context, resume *types.Resume, capture image.Image) {
	if p.thumbs == nil {
		return
	}
	data, err := thumbnail(capture)
	if err != nil {
		log.Printf("[EXPORT] thumbnail generation failed for resume %s: %v", resume.ID, err)
		return
	}
	if err := p.thumbs.SaveThumbnail(ctx, resume, data); err != nil {
		log.Printf("[EXPORT] thumbnail save failed for resume %s: %v", resume.ID, err)
	}
}

func (p *Pipeline) acquire(id uuid.UUID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, busy := p.inflight[id]; busy {
		return false
	}
	p.inflight[id] = struct{}{}
	return true
}

func (p *Pipeline) release(id uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.inflight, id)
}
