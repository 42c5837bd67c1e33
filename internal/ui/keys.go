package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines key bindings for the watch screen
type keyMap struct {
	Toggle key.Binding
	Help   key.Binding
	Quit   key.Binding

	// Simulation bindings, enabled with WithSimulation.
	Connection  key.Binding
	Charging    key.Binding
	BatteryUp   key.Binding
	BatteryDown key.Binding
	Steps       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hide/show"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Connection: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle connection"),
		),
		Charging: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "toggle charging"),
		),
		BatteryUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "battery +10"),
		),
		BatteryDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "battery -10"),
		),
		Steps: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "add 100 steps"),
		),
	}
}

func (k *keyMap) setSimulation(enabled bool) {
	k.Connection.SetEnabled(enabled)
	k.Charging.SetEnabled(enabled)
	k.BatteryUp.SetEnabled(enabled)
	k.BatteryDown.SetEnabled(enabled)
	k.Steps.SetEnabled(enabled)
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Help, k.Quit},
		{k.Connection, k.Charging, k.BatteryUp, k.BatteryDown, k.Steps},
	}
}
