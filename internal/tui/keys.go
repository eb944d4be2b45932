package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextView  key.Binding
	Search    key.Binding
	Filter    key.Binding
	Amount    key.Binding
	SortField key.Binding
	SortDir   key.Binding
	Clear     key.Binding
	UpDown    key.Binding
	Enter     key.Binding
	Close     key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		NextView:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		Amount:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "amount")),
		SortField: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort field")),
		SortDir:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reverse")),
		Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		UpDown:    key.NewBinding(key.WithKeys("up", "down", "j", "k"), key.WithHelp("j/k", "navigate")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextView, k.Search, k.Filter, k.SortField, k.UpDown, k.Enter, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextView, k.Search, k.Filter, k.Amount},
		{k.SortField, k.SortDir, k.Clear},
		{k.UpDown, k.Enter, k.Close, k.Quit},
	}
}
