/*
 * Copyright (c) 2026-Present, Okta, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package picker provides a fuzzy search picker using bubbletea. The MFA
// factor chooser runs it when more than one factor matches.
package picker

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))
)

const maxVisible = 10

// Model represents the picker state. Items keep their original position so
// the caller gets an index back rather than a display string.
type Model struct {
	title     string
	items     []string
	filtered  []int
	cursor    int
	selected  int
	textInput textinput.Model
	quitting  bool
	cancelled bool
}

// New creates a new picker model
func New(title string, items []string) Model {
	ti := textinput.New()
	ti.Placeholder = "Type to search..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 50

	filtered := make([]int, len(items))
	for i := range items {
		filtered[i] = i
	}

	return Model{
		title:     title,
		items:     items,
		filtered:  filtered,
		selected:  -1,
		textInput: ti,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			m.quitting = true
			return m, tea.Quit

		case "enter":
			if len(m.filtered) > 0 && m.cursor < len(m.filtered) {
				m.selected = m.filtered[m.cursor]
			}
			m.quitting = true
			return m, tea.Quit

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	prevValue := m.textInput.Value()
	m.textInput, cmd = m.textInput.Update(msg)

	if m.textInput.Value() != prevValue {
		m.filter()
		m.cursor = 0
	}

	return m, cmd
}

func (m *Model) filter() {
	query := m.textInput.Value()
	if query == "" {
		m.filtered = make([]int, len(m.items))
		for i := range m.items {
			m.filtered[i] = i
		}
		return
	}

	matches := fuzzy.Find(query, m.items)
	m.filtered = make([]int, len(matches))
	for i, match := range matches {
		m.filtered[i] = match.Index
	}
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("? "+m.title) + "\n\n")
	b.WriteString("  " + m.textInput.View() + "\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(dimStyle.Render("  No matches found\n"))
	}

	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := start + maxVisible
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := start; i < end; i++ {
		item := m.items[m.filtered[i]]
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> ") + selectedStyle.Render(item) + "\n")
		} else {
			b.WriteString("  " + normalStyle.Render(item) + "\n")
		}
	}
	if end < len(m.filtered) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d more below\n", len(m.filtered)-end)))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d/%d", len(m.filtered), len(m.items))))
	b.WriteString(dimStyle.Render("  •  ↑/↓ navigate  •  enter select  •  esc cancel"))

	return b.String()
}

// Pick runs the picker and returns the index of the selected item
func Pick(title string, items []string) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("no items to select from")
	}

	if len(items) == 1 {
		return 0, nil
	}

	m := New(title, items)
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))

	finalModel, err := p.Run()
	if err != nil {
		return -1, fmt.Errorf("error running picker: %w", err)
	}

	result := finalModel.(Model)
	if result.cancelled {
		return -1, fmt.Errorf("selection cancelled")
	}

	if result.selected < 0 {
		return -1, fmt.Errorf("no item selected")
	}

	return result.selected, nil
}
