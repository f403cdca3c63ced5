// Package components provides UI components for mpvtui.
package components

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dewi-tim/mpvtui/internal/library"
)

// LibBrowserKeyMap defines key bindings for the library browser.
type LibBrowserKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	GoToTop    key.Binding
	GoToBottom key.Binding
	Enter      key.Binding // Expand/collapse or play
	Back       key.Binding // Collapse or go to parent
	Enqueue    key.Binding // Append folder or item to the playlist
	Rescan     key.Binding
}

// DefaultLibBrowserKeyMap returns the default library browser key bindings.
func DefaultLibBrowserKeyMap() LibBrowserKeyMap {
	return LibBrowserKeyMap{
		Up:         bind("k/up", "up", "k", "up"),
		Down:       bind("j/down", "down", "j", "down"),
		PageUp:     bind("pgup", "page up", "pgup", "ctrl+u"),
		PageDown:   bind("pgdown", "page down", "pgdown", "ctrl+d"),
		GoToTop:    bind("g", "top", "g", "home"),
		GoToBottom: bind("G", "bottom", "G", "end"),
		Enter:      bind("enter", "open/play", "enter", "l", "right"),
		Back:       bind("backspace", "collapse", "backspace", "h", "left"),
		Enqueue:    bind("a", "enqueue", "a"),
		Rescan:     bind("R", "rescan", "R"),
	}
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// NodeType represents the type of tree node.
type NodeType int

const (
	NodeFolder NodeType = iota
	NodeItem
)

// TreeNode represents a node in the library tree.
type TreeNode struct {
	Type     NodeType
	Name     string
	Item     library.Item // For items
	Children []*TreeNode
	Expanded bool
	Parent   *TreeNode
}

// LibBrowser is a folder tree over a media library.
type LibBrowser struct {
	lib  *library.Library
	root []*TreeNode // Folder nodes

	// Flat list of visible nodes for navigation
	flatList []*TreeNode

	// Selection state
	selected int
	offset   int

	// Dimensions
	width  int
	height int

	focused bool
	keyMap  LibBrowserKeyMap
	styles  LibBrowserStyles

	// Status
	scanning  bool
	itemCount int
	scanErr   error
}

// LibBrowserStyles contains styles for the library browser component.
type LibBrowserStyles struct {
	Cursor    lipgloss.Style
	Folder    lipgloss.Style
	Audio     lipgloss.Style
	Video     lipgloss.Style
	Selected  lipgloss.Style
	Muted     lipgloss.Style
	Indent    string
	Expanded  string
	Collapsed string
}

// DefaultLibBrowserStyles returns the default library browser styles.
func DefaultLibBrowserStyles() LibBrowserStyles {
	return LibBrowserStyles{
		Cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7571F9")).
			Bold(true),
		Folder: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true),
		Audio: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		Video: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#99CCFF")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7571F9")).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#606060")),
		Indent:    "  ",
		Expanded:  "[-]",
		Collapsed: "[+]",
	}
}

// LibScanCompleteMsg is sent when library scanning completes.
type LibScanCompleteMsg struct {
	Count int
	Err   error
}

// LibItemsSelectedMsg is sent when items are chosen for playback. Replace is
// false when the items should be appended to the playlist.
type LibItemsSelectedMsg struct {
	Items   []library.Item
	Replace bool
}

// NewLibBrowser creates a new library browser.
func NewLibBrowser(lib *library.Library) *LibBrowser {
	return &LibBrowser{
		lib:    lib,
		width:  30,
		height: 10,
		keyMap: DefaultLibBrowserKeyMap(),
		styles: DefaultLibBrowserStyles(),
	}
}

// Init starts the first scan.
func (b *LibBrowser) Init() tea.Cmd {
	return b.Scan()
}

// Scan returns a command that rescans the library.
func (b *LibBrowser) Scan() tea.Cmd {
	b.scanning = true
	lib := b.lib
	return func() tea.Msg {
		n, err := lib.Scan(context.Background())
		return LibScanCompleteMsg{Count: n, Err: err}
	}
}

// Update handles messages for the browser.
func (b *LibBrowser) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case LibScanCompleteMsg:
		b.scanning = false
		b.scanErr = msg.Err
		b.itemCount = msg.Count
		if msg.Err == nil {
			b.buildTree()
		}
		return nil

	case tea.KeyMsg:
		if !b.focused {
			return nil
		}
		return b.handleKey(msg)
	}
	return nil
}

func (b *LibBrowser) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, b.keyMap.Up):
		b.moveCursor(-1)
	case key.Matches(msg, b.keyMap.Down):
		b.moveCursor(1)
	case key.Matches(msg, b.keyMap.PageUp):
		b.moveCursor(-b.visibleLines())
	case key.Matches(msg, b.keyMap.PageDown):
		b.moveCursor(b.visibleLines())
	case key.Matches(msg, b.keyMap.GoToTop):
		b.moveCursor(-len(b.flatList))
	case key.Matches(msg, b.keyMap.GoToBottom):
		b.moveCursor(len(b.flatList))
	case key.Matches(msg, b.keyMap.Enter):
		return b.enter()
	case key.Matches(msg, b.keyMap.Back):
		b.back()
	case key.Matches(msg, b.keyMap.Enqueue):
		return b.enqueue()
	case key.Matches(msg, b.keyMap.Rescan):
		if !b.scanning {
			return b.Scan()
		}
	}
	return nil
}

// buildTree rebuilds the folder tree, keeping expanded folders expanded.
func (b *LibBrowser) buildTree() {
	expanded := make(map[string]bool)
	for _, n := range b.root {
		if n.Expanded {
			expanded[n.Name] = true
		}
	}

	b.root = b.root[:0]
	for _, f := range b.lib.Folders() {
		node := &TreeNode{Type: NodeFolder, Name: f.Name, Expanded: expanded[f.Name]}
		for _, it := range f.Items {
			node.Children = append(node.Children, &TreeNode{
				Type:   NodeItem,
				Name:   it.Title,
				Item:   it,
				Parent: node,
			})
		}
		b.root = append(b.root, node)
	}
	b.flatten()
}

func (b *LibBrowser) flatten() {
	b.flatList = b.flatList[:0]
	for _, n := range b.root {
		b.flatList = append(b.flatList, n)
		if n.Expanded {
			b.flatList = append(b.flatList, n.Children...)
		}
	}
	b.moveCursor(0)
}

func (b *LibBrowser) moveCursor(delta int) {
	b.selected = max(0, min(b.selected+delta, len(b.flatList)-1))

	visible := b.visibleLines()
	if b.selected < b.offset {
		b.offset = b.selected
	}
	if b.selected >= b.offset+visible {
		b.offset = b.selected - visible + 1
	}
}

func (b *LibBrowser) visibleLines() int {
	// One line for the status header
	return max(1, b.height-1)
}

// Selected returns the node under the cursor, or nil.
func (b *LibBrowser) Selected() *TreeNode {
	if b.selected < 0 || b.selected >= len(b.flatList) {
		return nil
	}
	return b.flatList[b.selected]
}

func (b *LibBrowser) enter() tea.Cmd {
	node := b.Selected()
	if node == nil {
		return nil
	}
	if node.Type == NodeFolder {
		node.Expanded = !node.Expanded
		b.flatten()
		return nil
	}

	// Play from this item to the end of its folder.
	var items []library.Item
	found := false
	for _, sib := range node.Parent.Children {
		if sib == node {
			found = true
		}
		if found {
			items = append(items, sib.Item)
		}
	}
	return selectItems(items, true)
}

func (b *LibBrowser) back() {
	node := b.Selected()
	if node == nil {
		return
	}
	folder := node
	if node.Type == NodeItem {
		folder = node.Parent
	}
	folder.Expanded = false
	b.flatten()
	for i, n := range b.flatList {
		if n == folder {
			b.selected = i
			b.moveCursor(0)
			break
		}
	}
}

func (b *LibBrowser) enqueue() tea.Cmd {
	node := b.Selected()
	if node == nil {
		return nil
	}
	if node.Type == NodeItem {
		return selectItems([]library.Item{node.Item}, false)
	}
	items := make([]library.Item, len(node.Children))
	for i, c := range node.Children {
		items[i] = c.Item
	}
	return selectItems(items, false)
}

func selectItems(items []library.Item, replace bool) tea.Cmd {
	if len(items) == 0 {
		return nil
	}
	return func() tea.Msg {
		return LibItemsSelectedMsg{Items: items, Replace: replace}
	}
}

// SetSize sets the dimensions of the browser.
func (b *LibBrowser) SetSize(width, height int) {
	b.width = width
	b.height = height
	b.moveCursor(0)
}

// Focus sets the browser to focused state.
func (b *LibBrowser) Focus() {
	b.focused = true
}

// Blur removes focus from the browser.
func (b *LibBrowser) Blur() {
	b.focused = false
}

// Focused returns whether the browser is focused.
func (b *LibBrowser) Focused() bool {
	return b.focused
}

// Status returns a one-line summary of the library state.
func (b *LibBrowser) Status() string {
	switch {
	case b.scanning:
		return "Scanning..."
	case b.scanErr != nil:
		return "Scan failed: " + b.scanErr.Error()
	default:
		return fmt.Sprintf("%d files in %d folders", b.itemCount, len(b.root))
	}
}

// View renders the browser.
func (b *LibBrowser) View() string {
	var sb strings.Builder
	sb.WriteString(b.styles.Muted.Render(truncate(b.Status(), b.width)))

	if len(b.flatList) == 0 {
		if !b.scanning {
			sb.WriteString("\n")
			sb.WriteString(b.styles.Muted.Render("No media found"))
		}
		return sb.String()
	}

	end := min(b.offset+b.visibleLines(), len(b.flatList))
	for i := b.offset; i < end; i++ {
		sb.WriteString("\n")
		sb.WriteString(b.renderNode(b.flatList[i], i == b.selected))
	}
	return sb.String()
}

func (b *LibBrowser) renderNode(n *TreeNode, selected bool) string {
	cursor := "  "
	if selected && b.focused {
		cursor = b.styles.Cursor.Render("> ")
	}

	var line string
	var style lipgloss.Style
	switch n.Type {
	case NodeFolder:
		marker := b.styles.Collapsed
		if n.Expanded {
			marker = b.styles.Expanded
		}
		line = fmt.Sprintf("%s %s (%d)", marker, n.Name, len(n.Children))
		style = b.styles.Folder
	default:
		line = b.styles.Indent + n.Name
		style = b.styles.Audio
		if n.Item.Kind == library.Video {
			style = b.styles.Video
		}
	}
	if selected {
		style = b.styles.Selected
	}
	return cursor + style.Render(truncate(line, b.width-2))
}

// truncate shortens s to width cells, marking the cut with "...".
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 3 {
		return strings.Repeat(".", width)
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
