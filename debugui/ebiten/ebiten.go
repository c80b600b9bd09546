// Package ebiten hosts the debug overlay on the Ebiten Dear ImGui backend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/dotfall/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewBackend creates the backend window. imgui.ini is not written.
func NewBackend(title string, width, height int) ImguiBackend {
	b := ebitenbackend.NewEbitenBackend()
	b.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return ImguiBackend{EbitenBackend: b}
}

// Host brackets one overlay frame. Call Update from the game's Update, Draw
// after the game has drawn, and Layout from the game's Layout.
type Host struct {
	Backend ImguiBackend
	Overlay *debugui.Overlay

	// Enabled toggles drawing without tearing down the ImGui context.
	Enabled bool
}

// NewHost creates an enabled host keeping historyFrames tick samples.
func NewHost(backend ImguiBackend, historyFrames int) *Host {
	return &Host{
		Backend: backend,
		Overlay: debugui.NewOverlay(historyFrames),
		Enabled: true,
	}
}

// Update renders s into a new ImGui frame.
func (h *Host) Update(s debugui.Snapshot) {
	h.Backend.BeginFrame()
	if h.Enabled {
		h.Overlay.Render(s)
	}
	h.Backend.EndFrame()
}

// Draw paints the last ImGui frame over screen.
func (h *Host) Draw(screen *ebiten.Image) {
	h.Backend.Draw(screen)
}

// Layout forwards the window size to ImGui.
func (h *Host) Layout(outsideWidth, outsideHeight int) {
	h.Backend.Layout(outsideWidth, outsideHeight)
}

// WantsKeyboard reports whether an ImGui widget has keyboard focus, in which
// case game keys should be ignored.
func (h *Host) WantsKeyboard() bool {
	return h.Enabled && imgui.CurrentIO().WantCaptureKeyboard()
}
