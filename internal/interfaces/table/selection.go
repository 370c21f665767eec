package table

// NoRow índice de fila cuando no hay selección.
const NoRow = -1

// Selection fila seleccionada de una tabla con rows filas.
type Selection struct {
	rows     int
	selected int
}

// NewSelection crea una selección vacía para una tabla de rows filas.
func NewSelection(rows int) *Selection {
	return &Selection{rows: rows, selected: NoRow}
}

// Select selecciona la fila; índices fuera de rango limpian la selección.
func (s *Selection) Select(row int) {
	if row < 0 || row >= s.rows {
		s.selected = NoRow
		return
	}
	s.selected = row
}

// SetRows actualiza el número de filas y descarta una selección que ya no existe.
func (s *Selection) SetRows(rows int) {
	s.rows = rows
	if s.selected >= rows {
		s.selected = NoRow
	}
}

// Selected devuelve la fila seleccionada y si existe.
func (s *Selection) Selected() (int, bool) {
	return s.selected, s.selected != NoRow
}

// Key tecla relevante para la tabla.
type Key string

// KeyDelete tecla de borrado.
const KeyDelete Key = "Delete"

// DeleteKeyHandler devuelve el manejador de teclado: Delete con una fila seleccionada invoca
// onDelete una sola vez; sin selección, u otra tecla, no hace nada. Devuelve si despachó.
func DeleteKeyHandler(sel *Selection, onDelete func(row int)) func(Key) bool {
	return func(k Key) bool {
		if k != KeyDelete {
			return false
		}
		row, ok := sel.Selected()
		if !ok {
			return false
		}
		onDelete(row)
		return true
	}
}
