package table

import "fmt"

// Action acción con nombre del menú contextual.
type Action struct {
	Name              string
	RequiresSelection bool
	Run               func(row int) // row = NoRow cuando no hay selección
}

// MenuItem entrada presentada al usuario.
type MenuItem struct {
	Name    string
	Enabled bool
}

// ContextMenu menú del clic secundario sobre una tabla.
type ContextMenu struct {
	sel     *Selection
	actions []Action
}

// NewContextMenu crea el menú sobre la selección dada.
func NewContextMenu(sel *Selection, actions ...Action) *ContextMenu {
	return &ContextMenu{sel: sel, actions: actions}
}

// Open selecciona primero la fila bajo el puntero (NoRow si no hay ninguna) y devuelve las
// entradas: una acción está habilitada si no requiere selección o hay una fila seleccionada.
func (m *ContextMenu) Open(rowAtPointer int) []MenuItem {
	if rowAtPointer != NoRow {
		m.sel.Select(rowAtPointer)
	}
	_, hasSelection := m.sel.Selected()
	items := make([]MenuItem, 0, len(m.actions))
	for _, a := range m.actions {
		items = append(items, MenuItem{Name: a.Name, Enabled: !a.RequiresSelection || hasSelection})
	}
	return items
}

// Invoke ejecuta la acción por nombre si está habilitada.
func (m *ContextMenu) Invoke(name string) error {
	row, hasSelection := m.sel.Selected()
	for _, a := range m.actions {
		if a.Name != name {
			continue
		}
		if a.RequiresSelection && !hasSelection {
			return fmt.Errorf("table: acción %q requiere una fila seleccionada", name)
		}
		if a.Run != nil {
			a.Run(row)
		}
		return nil
	}
	return fmt.Errorf("table: acción %q desconocida", name)
}
