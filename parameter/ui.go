package parameter

// Colors as packed 0xRRGGBB
const (
	BackgroundBase  = 0x0A0A14
	BackgroundFlash = 0x3C3C64
	QuillHue        = 360.0 // Degrees
	QuillSaturation = 0.95
	QuillLightness  = 0.7
	InkHue          = 360.0
	InkSaturation   = 0.85
	InkLightness    = 0.7
	EnemyColor      = 0xFF5050
	HUDColor        = 0xC8C8C8
)

// HueShift is the hue rotation in degrees applied at full intensity
const HueShift = 60.0
