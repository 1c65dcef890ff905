package entity

import "time"

// Category representa una categoría del catálogo (árbol de hasta 3 niveles).
// ParentID vacío indica que es raíz. La relación padre/hijo es acíclica.
type Category struct {
	ID        string
	Name      string
	ParentID  string // vacío si es raíz
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot indica si la categoría no tiene padre.
func (c *Category) IsRoot() bool {
	return c.ParentID == ""
}
