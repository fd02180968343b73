// Package viz renders a scene into the terminal.
//
// Meshes are drawn as braille wireframes (2x4 dots per cell) projected
// through the scene's orbit camera. The frame loop is a bubbletea program:
// one tick per frame, window size messages as resize notifications, arrow
// keys to orbit and +/- to zoom when the camera's controls are attached.
package viz
