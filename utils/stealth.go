package utils

import (
	"math/rand"
	"time"

	"go-hh-agent/internal/browser"
)

// RandomDelay pauses execution for a random time between min and max (milliseconds)
func RandomDelay(min, max int) {
	if min >= max {
		time.Sleep(time.Duration(min) * time.Millisecond)
		return
	}
	duration := time.Duration(rand.Intn(max-min)+min) * time.Millisecond
	time.Sleep(duration)
}

// MouseJiggle moves the mouse to a random point inside the viewport
func MouseJiggle(page browser.Page, width, height int) {
	if width <= 200 || height <= 200 {
		return
	}
	x := float64(rand.Intn(width-200) + 100)
	y := float64(rand.Intn(height-200) + 100)

	_ = page.MouseMove(x, y)
	RandomDelay(100, 300)
}

// SmoothScroll simulates human scrolling behavior
func SmoothScroll(page browser.Page) {
	// Scroll down a bit
	_ = page.Wheel(500)
	RandomDelay(500, 1000)

	// Scroll up a tiny bit (human-like correction)
	_ = page.Wheel(-200)
	RandomDelay(300, 600)
}
