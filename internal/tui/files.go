package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "erro ao ler diretório: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.ToLower(filepath.Ext(name)) == ".dxf" {
			items = append(items, fileItem{title: name, desc: ".dxf", path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "nenhuma planta DXF no diretório atual"
	}
}

// startNamePrompt opens the upload prompt for the chosen DXF, pre-filling the
// plant name from the file name.
func (m *Model) startNamePrompt(path string) {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	m.pendingPath = path
	m.nameMode = true
	m.ti.SetValue(name)
	m.ti.CursorEnd()
	m.ti.Focus()
	m.status = "enviar " + base + ": confirme o nome"
}
