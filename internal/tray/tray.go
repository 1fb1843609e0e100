// Package tray shows the HUD connection state and last gesture in the
// system tray.
package tray

import (
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/jarvishud/internal/hud"
)

// Tray represents the system tray application.
type Tray struct {
	onOpen func()
	onQuit func()
	mu     sync.RWMutex

	connected bool
	gesture   string

	// Menu items stored for later updates
	menuStatus      *systray.MenuItem
	menuLastGesture *systray.MenuItem
}

// New creates a Tray showing a disconnected HUD.
func New() *Tray {
	return &Tray{gesture: hud.NoGesture}
}

// OnOpen sets the callback for the "Open HUD..." item.
func (t *Tray) OnOpen(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOpen = fn
}

// OnQuit sets the callback for the "Quit" item.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray. It blocks until Quit is chosen.
func (t *Tray) Run() {
	systray.Run(t.onReady, func() {})
}

func (t *Tray) onReady() {
	systray.SetTooltip("Jarvis HUD")

	t.mu.Lock()
	t.menuStatus = systray.AddMenuItem("", "Backend connection")
	t.menuStatus.Disable()
	t.menuLastGesture = systray.AddMenuItem("", "Last detected gesture")
	t.menuLastGesture.Disable()
	t.mu.Unlock()
	t.refresh()

	systray.AddSeparator()
	menuOpen := systray.AddMenuItem("Open HUD...", "Open the HUD in a browser")
	systray.AddSeparator()
	menuQuit := systray.AddMenuItem("Quit", "Quit Jarvis HUD")

	go func() {
		for {
			select {
			case <-menuOpen.ClickedCh:
				t.handleOpen()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) handleOpen() {
	t.mu.RLock()
	callback := t.onOpen
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
	systray.Quit()
}

// Quit stops the tray, unblocking Run.
func (t *Tray) Quit() {
	systray.Quit()
}

// SetConnected updates the connection indicator.
func (t *Tray) SetConnected(connected bool) {
	t.mu.Lock()
	t.connected = connected
	t.mu.Unlock()
	t.refresh()
}

// SetLastGesture updates the last gesture display.
func (t *Tray) SetLastGesture(name string) {
	if name == "" {
		name = hud.NoGesture
	}
	t.mu.Lock()
	t.gesture = name
	t.mu.Unlock()
	t.refresh()
}

// Title returns the tray title for the current state.
func (t *Tray) Title() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return title(t.connected)
}

// LastGesture returns the label shown in the menu.
func (t *Tray) LastGesture() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return "Last: " + t.gesture
}

func title(connected bool) string {
	if connected {
		return "HUD ●"
	}
	return "HUD ○"
}

// refresh pushes the current state to the menu once it exists.
func (t *Tray) refresh() {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuStatus == nil {
		return
	}
	systray.SetTitle(title(t.connected))
	if t.connected {
		t.menuStatus.SetTitle("Connected")
	} else {
		t.menuStatus.SetTitle("Disconnected")
	}
	t.menuLastGesture.SetTitle("Last: " + t.gesture)
}
