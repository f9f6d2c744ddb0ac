// ABOUTME: Bubble Tea message types used in the TUI message loop.
// ABOUTME: Frames are requested as messages so that scene mutation stays on the Update goroutine.
package tui

// FrameMsg asks the app to run one scene frame.
type FrameMsg struct{}

// PressMsg presses a scene control by name and then runs a frame.
type PressMsg struct {
	Control string
}
