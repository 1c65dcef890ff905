package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
// ParentID vacío crea una raíz.
type CreateCategoryRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	ParentID string `json:"parent_id"`
}

// UpdateCategoryRequest entrada para renombrar y/o mover una categoría.
// Si ParentID viene, se aplican las mismas validaciones que en Move.
type UpdateCategoryRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	ParentID *string `json:"parent_id"`
}

// MoveCategoryRequest entrada para mover un subárbol. NewParentID vacío mueve a raíz.
type MoveCategoryRequest struct {
	NewParentID string `json:"new_parent_id"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  string    `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryNode nodo del árbol de categorías para render.
type CategoryNode struct {
	CategoryResponse
	Children []CategoryNode `json:"children,omitempty"`
}

// CategoryTreeResponse bosque completo de categorías.
type CategoryTreeResponse struct {
	Items []CategoryNode `json:"items"`
}
