package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PizzaHomicide/sedai/internal/log"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Exporter captures rendered grids as PNG images using a headless Chrome
type Exporter struct {
	// BrowserBin is the Chrome/Chromium binary to launch.  Empty lets rod find or download one.
	BrowserBin string
	Timeout    time.Duration
}

func NewExporter(browserBin string) *Exporter {
	return &Exporter{
		BrowserBin: browserBin,
		Timeout:    time.Minute,
	}
}

// FileName is the name an export of the given user and theme is saved under
func FileName(userID, themeKey string) string {
	safeID := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, userID)
	return fmt.Sprintf("anime-sedai-%s-%s.png", safeID, themeKey)
}

// Export renders view and writes it to dir as a full page PNG.  It returns the path written to.
func (e *Exporter) Export(ctx context.Context, view View, opts Options, dir string) (string, error) {
	page, err := RenderHTML(view, opts)
	if err != nil {
		return "", err
	}

	img, err := e.screenshot(ctx, string(page), opts.Scale)
	if err != nil {
		return "", fmt.Errorf("failed to capture grid image: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, FileName(view.UserID, opts.Theme.Key))
	if err := os.WriteFile(path, img, 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}

	log.Info("Exported grid image", "user_id", view.UserID, "theme", opts.Theme.Key, "path", path, "bytes", len(img))
	return path, nil
}

func (e *Exporter) screenshot(ctx context.Context, html string, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	l := launcher.New().Headless(true).Context(ctx)
	if e.BrowserBin != "" {
		l = l.Bin(e.BrowserBin)
	}
	defer l.Cleanup()

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}
	log.Debug("Launched headless browser", "control_url", controlURL)

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			log.Warn("Failed to close browser", "error", err)
		}
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             pageWidth + 64,
		Height:            900,
		DeviceScaleFactor: scale,
		Mobile:            false,
	}).Call(page); err != nil {
		log.Warn("Failed to set viewport", "error", err)
	}

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("load grid page: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait for grid page: %w", err)
	}

	return page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
}
