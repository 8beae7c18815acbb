package render

import "github.com/gdamore/tcell/v2"

// Palette
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbGround     = tcell.NewRGBColor(86, 95, 137)   // Muted slate
	RgbText       = tcell.NewRGBColor(192, 202, 245) // Soft white
	RgbTextDim    = tcell.NewRGBColor(120, 124, 153)

	RgbP1       = tcell.NewRGBColor(100, 150, 255) // Blue
	RgbP1Bright = tcell.NewRGBColor(140, 190, 255)
	RgbP2       = tcell.NewRGBColor(255, 80, 80) // Red
	RgbP2Bright = tcell.NewRGBColor(255, 120, 120)

	RgbHitbox   = tcell.NewRGBColor(255, 255, 0)   // Bright yellow
	RgbHitFlash = tcell.NewRGBColor(255, 255, 200) // Yellow-white flash
	RgbClash    = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbBlock    = tcell.NewRGBColor(0, 200, 200)   // Cyan

	RgbHealth     = tcell.NewRGBColor(0, 200, 0)
	RgbHealthLow  = tcell.NewRGBColor(200, 50, 50)
	RgbStamina    = tcell.NewRGBColor(255, 192, 0)
	RgbMeterEmpty = tcell.NewRGBColor(50, 50, 50)
)

// healthColor shifts to red under a quarter of max health
func healthColor(ratio float64) tcell.Color {
	if ratio < 0.25 {
		return RgbHealthLow
	}
	return RgbHealth
}
