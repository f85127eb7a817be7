package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go-hh-agent/internal/browser"
)

// ScreenShotDebugger saves full-page screenshots when a page looks wrong
// (empty results, possible captcha). An empty dir disables it.
type ScreenShotDebugger struct {
	outputDir string
	logger    *log.Logger
}

func NewScreenShotDebugger(dir string, logger *log.Logger) *ScreenShotDebugger {
	if logger == nil {
		logger = log.Default()
	}
	return &ScreenShotDebugger{outputDir: dir, logger: logger}
}

// CaptureAndLog saves a screenshot named after name and returns its path.
func (s *ScreenShotDebugger) CaptureAndLog(page browser.Page, name, message string) (string, error) {
	if s == nil || s.outputDir == "" {
		return "", nil
	}
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return "", fmt.Errorf("create screenshot dir: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	path := filepath.Join(s.outputDir, fmt.Sprintf("%s_%s.png", name, timestamp))
	s.logger.Printf("📸 %s", message)

	if err := page.Screenshot(path); err != nil {
		s.logger.Printf("⚠️ Failed to capture screenshot: %v", err)
		return "", err
	}

	s.logger.Printf("   Screenshot saved: %s", path)
	return path, nil
}
