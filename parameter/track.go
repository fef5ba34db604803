package parameter

// TrackPoints is the closed racetrack centerline, traversed clockwise
var TrackPoints = [][2]float64{
	{0, 230},
	{240, 175},
	{300, 0},
	{240, -175},
	{0, -230},
	{-240, -175},
	{-300, 0},
	{-240, 175},
	{0, 230},
}

// Track geometry
const (
	// TrackRadius is the corridor half-width around the centerline
	TrackRadius = 60.0

	// SpawnX, SpawnY is where cars and police enter the track
	SpawnX = 0.0
	SpawnY = 160.0
)

// Median zone (grass island inside the loop)
const (
	MedianX      = 0.0
	MedianY      = 0.0
	MedianRadius = 80.0
	MedianMass   = 100.0
)

// Scene frame, walls at the edges
const (
	FrameMinX = -425.0
	FrameMinY = -319.0
	FrameMaxX = 425.0
	FrameMaxY = 319.0

	// WallThickness is the segment radius of frame walls
	WallThickness = 2.0
)
