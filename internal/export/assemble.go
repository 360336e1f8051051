package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// A4 page geometry at 96 CSS px/in, with the 10mm content margin the
// assembled layout uses.
const (
	pageWidthPx  = 794  // 210mm
	pageHeightPx = 1123 // 297mm
	marginPx     = 38   // 10mm
)

// fitRect computes where a capture of the given dimensions lands on the page:
// aspect-ratio preserving fit inside the content box, centered. Captures
// taller than the box fit to height, otherwise to width.
func fitRect(imgW, imgH int) image.Rectangle {
	contentW := pageWidthPx - 2*marginPx
	contentH := pageHeightPx - 2*marginPx

	var drawW, drawH int
	if imgH*contentW > imgW*contentH {
		// Taller than the content box: fit height.
		drawH = contentH
		drawW = imgW * contentH / imgH
	} else {
		drawW = contentW
		drawH = imgH * contentW / imgW
	}

	x := (pageWidthPx - drawW) / 2
	y := (pageHeightPx - drawH) / 2
	return image.Rect(x, y, x+drawW, y+drawH)
}

// composePage scales the capture into its fitted rect on a white A4 canvas.
// The canvas is built at 2x page resolution to keep the capture detail.
func composePage(capture image.Image) (image.Image, error) {
	const s = 2
	dc := gg.NewContext(pageWidthPx*s, pageHeightPx*s)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	bounds := capture.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, &AssemblyError{Message: "capture has zero size"}
	}

	rect := fitRect(bounds.Dx(), bounds.Dy())
	target := image.Rect(rect.Min.X*s, rect.Min.Y*s, rect.Max.X*s, rect.Max.Y*s)

	scaled := image.NewRGBA(image.Rect(0, 0, target.Dx(), target.Dy()))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), capture, bounds, xdraw.Over, nil)
	dc.DrawImage(scaled, target.Min.X, target.Min.Y)

	return dc.Image(), nil
}

// composeFallbackPage pins the capture full-width at the top-left of a white
// A4 canvas. No centering, no margin; the simple layout for when the tuned
// capture failed.
func composeFallbackPage(capture image.Image) (image.Image, error) {
	dc := gg.NewContext(pageWidthPx, pageHeightPx)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	bounds := capture.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, &AssemblyError{Message: "capture has zero size"}
	}

	drawW := pageWidthPx
	drawH := bounds.Dy() * pageWidthPx / bounds.Dx()
	scaled := image.NewRGBA(image.Rect(0, 0, drawW, drawH))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), capture, bounds, xdraw.Over, nil)
	dc.DrawImage(scaled, 0, 0)

	return dc.Image(), nil
}

// pageDocument wraps an encoded page raster in a minimal A4 print document
// for the PDF printer.
func pageDocument(mime string, encoded []byte) string {
	uri := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(encoded))
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  @page { size: A4; margin: 0; }
  html, body { margin: 0; padding: 0; }
  img { display: block; width: 210mm; height: 297mm; }
</style>
</head>
<body><img src="%s" alt=""></body>
</html>`, uri)
}

// encodePNG encodes the page raster losslessly for the primary path.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &AssemblyError{Message: "failed to encode page png", Cause: err}
	}
	return buf.Bytes(), nil
}

// encodeJPEG encodes the page raster for the fallback path.
func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, &AssemblyError{Message: "failed to encode page jpeg", Cause: err}
	}
	return buf.Bytes(), nil
}

// thumbnailWidth is the raster width stored for dashboard cards.
const thumbnailWidth = 320

// thumbnail scales a capture down to the dashboard card size.
func thumbnail(capture image.Image) ([]byte, error) {
	bounds := capture.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, &AssemblyError{Message: "capture has zero size"}
	}

	h := bounds.Dy() * thumbnailWidth / bounds.Dx()
	scaled := image.NewRGBA(image.Rect(0, 0, thumbnailWidth, h))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), capture, bounds, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, &AssemblyError{Message: "failed to encode thumbnail", Cause: err}
	}
	return buf.Bytes(), nil
}
