package loader

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Settle runs cmd and every command it leads to synchronously, feeding each message into m,
// until no command is left. Batches are flattened. It is the non-interactive counterpart of
// a tea.Program for models whose commands all terminate.
func Settle(m tea.Model, cmd tea.Cmd) tea.Model {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case nil:
			continue
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			var follow tea.Cmd
			m, follow = m.Update(msg)
			queue = append(queue, follow)
		}
	}
	return m
}
