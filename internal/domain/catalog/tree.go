package catalog

import "github.com/tu-usuario/catalogo-pro/internal/domain/entity"

// Funciones puras sobre el árbol de categorías. Operan sobre la lista plana
// completa; los recorridos usan un mapa de adyacencia y una pila explícita
// para que el costo O(n) sea visible y no haya recursión sin límite.

// Node nodo del árbol de categorías para lectura (render del catálogo).
type Node struct {
	Category *entity.Category
	Children []*Node
}

// ChildIndex construye el mapa de adyacencia parent_id -> hijos.
// La clave vacía agrupa las raíces. Conserva el orden de la lista de entrada.
func ChildIndex(flat []*entity.Category) map[string][]*entity.Category {
	index := make(map[string][]*entity.Category, len(flat))
	for _, c := range flat {
		index[c.ParentID] = append(index[c.ParentID], c)
	}
	return index
}

// BuildTree arma el bosque a partir de la lista plana. El orden de hermanos
// es el orden de la lista (el fetch ordena por nombre ascendente).
func BuildTree(flat []*entity.Category) []*Node {
	index := ChildIndex(flat)
	return buildNodes(index, "")
}

func buildNodes(index map[string][]*entity.Category, parentID string) []*Node {
	children := index[parentID]
	if len(children) == 0 {
		return nil
	}
	nodes := make([]*Node, 0, len(children))
	for _, c := range children {
		nodes = append(nodes, &Node{
			Category: c,
			Children: buildNodes(index, c.ID),
		})
	}
	return nodes
}

// Descendants devuelve los IDs de todos los descendientes de id (sin incluirlo),
// recorriendo el índice con una pila explícita.
func Descendants(index map[string][]*entity.Category, id string) []string {
	var out []string
	stack := []string{id}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range index[current] {
			out = append(out, child.ID)
			stack = append(stack, child.ID)
		}
	}
	return out
}

// Depth calcula la profundidad de id respecto a su raíz (raíz = 0) siguiendo
// los punteros a padre. Devuelve -1 si id no está en la lista o si la cadena
// de padres está rota o forma un ciclo.
func Depth(flat []*entity.Category, id string) int {
	byID := make(map[string]*entity.Category, len(flat))
	for _, c := range flat {
		byID[c.ID] = c
	}
	depth := 0
	current, ok := byID[id]
	if !ok {
		return -1
	}
	for current.ParentID != "" {
		parent, ok := byID[current.ParentID]
		if !ok || depth >= len(flat) {
			return -1
		}
		current = parent
		depth++
	}
	return depth
}

// DeepestRelativeDepth devuelve la profundidad del descendiente más profundo
// relativa a id (0 si no tiene descendientes).
func DeepestRelativeDepth(index map[string][]*entity.Category, id string) int {
	deepest := 0
	type frame struct {
		id    string
		level int
	}
	stack := []frame{{id: id, level: 0}}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range index[current.id] {
			level := current.level + 1
			if level > deepest {
				deepest = level
			}
			stack = append(stack, frame{id: child.ID, level: level})
		}
	}
	return deepest
}
