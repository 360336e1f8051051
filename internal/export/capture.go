package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// imageWaitTimeout bounds how long a capture waits for <img> elements to
// finish loading. On timeout the capture proceeds with whatever rendered.
const imageWaitTimeout = 5 * time.Second

// imageWaitPoll is the poll interval for the image completeness check.
const imageWaitPoll = 100 * time.Millisecond

// Backend renders preview HTML in a browser: raster capture for PDF assembly
// and direct HTML-to-PDF printing.
type Backend interface {
	Capture(ctx context.Context, html string, scale float64, waitForImages bool) (image.Image, error)
	PrintHTML(ctx context.Context, html string) ([]byte, error)
}

// ChromeBackend drives a headless Chrome via chromedp. ChromePath overrides
// browser discovery; empty means use whatever chromedp finds.
type ChromeBackend struct {
	ChromePath string
	Timeout    time.Duration
}

// NewChromeBackend returns a backend with a 60s per-operation timeout.
func NewChromeBackend(chromePath string) *ChromeBackend {
	return &ChromeBackend{ChromePath: chromePath, Timeout: 60 * time.Second}
}

func (b *ChromeBackend) newContext(ctx context.Context) (context.Context, context.CancelFunc, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if b.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(b.ChromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	timeout := b.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	runCtx, cancelRun := context.WithTimeout(browserCtx, timeout)

	cancel := func() {
		cancelRun()
		cancelBrowser()
		cancelAlloc()
	}
	return runCtx, cancel, nil
}

// writeTempHTML writes the document to a temp file so Chrome loads it over
// file://; returns the URL and a cleanup func.
func writeTempHTML(html string) (string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "resume-export-")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		os.RemoveAll(tmpDir)
		return "", nil, fmt.Errorf("failed to write preview html: %w", err)
	}
	return "file://" + htmlPath, func() { os.RemoveAll(tmpDir) }, nil
}

// Capture renders the document and screenshots the full page at the given
// device scale. With waitForImages set it polls document.images completeness
// under a bounded timeout; a timeout is not an error.
func (b *ChromeBackend) Capture(ctx context.Context, html string, scale float64, waitForImages bool) (image.Image, error) {
	runCtx, cancel, err := b.newContext(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	htmlURL, cleanup, err := writeTempHTML(html)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	actions := []chromedp.Action{
		chromedp.Navigate(htmlURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if waitForImages {
		actions = append(actions, chromedp.ActionFunc(func(ctx context.Context) error {
			return waitImagesComplete(ctx, chromeImageProbe, imageWaitTimeout, imageWaitPoll)
		}))
	}

	var buf []byte
	actions = append(actions,
		chromedp.EmulateViewport(794, 1123, chromedp.EmulateScale(scale)),
		chromedp.FullScreenshot(&buf, 100),
	)

	if err := chromedp.Run(runCtx, actions...); err != nil {
		return nil, &CaptureError{Message: "screenshot failed", Cause: err}
	}

	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, &CaptureError{Message: "failed to decode screenshot", Cause: err}
	}
	return img, nil
}

// imageProbe reports whether every image in the document finished loading.
type imageProbe func(ctx context.Context) (bool, error)

// chromeImageProbe asks the page for document.images completeness.
func chromeImageProbe(ctx context.Context) (bool, error) {
	var done bool
	err := chromedp.Evaluate(
		`Array.from(document.images).every(function(i){ return i.complete; })`,
		&done,
	).Do(ctx)
	return done, err
}

// waitImagesComplete polls the probe until every <img> reports complete, or
// the bounded timeout elapses. The timeout path returns nil: export proceeds
// with whatever rendered, it never blocks on a slow image.
func waitImagesComplete(ctx context.Context, probe imageProbe, timeout, poll time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		done, err := probe(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(poll):
		}
	}
	return nil
}

// PrintHTML renders the document and prints it to an A4 PDF with backgrounds.
func (b *ChromeBackend) PrintHTML(ctx context.Context, html string) ([]byte, error) {
	runCtx, cancel, err := b.newContext(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	htmlURL, cleanup, err := writeTempHTML(html)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	var pdf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate(htmlURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm -> 8.27in x 11.69in
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &AssemblyError{Message: "pdf print failed", Cause: err}
	}
	return pdf, nil
}
