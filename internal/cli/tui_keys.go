package cli

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Prev      key.Binding
	Next      key.Binding
	Today     key.Binding
	ZoomDay   key.Binding
	ZoomWeek  key.Binding
	ZoomMonth key.Binding
	ZoomYear  key.Binding
	New       key.Binding
	Cancel    key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
		Next:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		ZoomDay:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "day")),
		ZoomWeek:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week")),
		ZoomMonth: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month")),
		ZoomYear:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "year")),
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new price")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Today, k.New, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Today},
		{k.ZoomDay, k.ZoomWeek, k.ZoomMonth, k.ZoomYear},
		{k.New, k.Cancel, k.Refresh},
		{k.Help, k.Quit},
	}
}
