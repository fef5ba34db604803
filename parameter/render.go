package parameter

// Terminal presentation
const (
	// HUDRows is the number of screen rows below the world reserved for status
	HUDRows = 2

	// TrackSampleCells is the spacing of centerline and edge marks in cells
	TrackSampleCells = 0.5

	// MaxRecentNotes is the number of notifications kept for the status line
	MaxRecentNotes = 4

	// SirenFlashHz is the police glyph color alternation rate
	SirenFlashHz = 2.0
)
