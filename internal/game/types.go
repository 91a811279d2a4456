package game

import "image/color"

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

// Colors used by the overlay.
var (
	backgroundColor = color.RGBA{30, 28, 25, 255}
	zoneColor       = color.RGBA{255, 80, 80, 200}
	textColor       = color.RGBA{255, 255, 255, 255}
)
