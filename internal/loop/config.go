package loop

import "time"

// Frame timing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
	MaxFrameDelta   = 60 * time.Millisecond // Longer frames are simulated as this
)

// Max render resolution in terminal cells. Larger terminals get a centred,
// bordered canvas.
const (
	MaxTermWidth  = 120
	MaxTermHeight = 50
)

// Keyboard turret speed in field units per second.
const turretKeySpeed = 300.0

// Shutdown
const (
	ShutdownDisplay = 10 * time.Second // How long to show the shutdown notice before disconnecting
)

// Inactivity
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)
