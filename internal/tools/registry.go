// Package tools expone los reportes y el histórico de la cuenta como
// herramientas invocables por nombre, con argumentos tipados sueltos.
// Es la capa que la CLI (u otro front) usa para pedir un reporte.
package tools

import (
	"context"
	"fmt"
	"sort"
)

// Args son los argumentos de una invocación. Los accessors toleran los
// tipos con los que suelen llegar los números (int, float64).
type Args map[string]any

// Int devuelve el argumento como int, o def si no está o no es numérico.
func (a Args) Int(key string, def int) int {
	v, ok := a[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return def
}

// String devuelve el argumento como string, o def si no está.
func (a Args) String(key, def string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return def
}

// Handler ejecuta una herramienta y devuelve su respuesta en texto.
// Los errores de negocio van DENTRO de la respuesta, como string legible;
// el error de retorno queda para fallos de invocación.
type Handler func(ctx context.Context, args Args) (string, error)

// Tool es una herramienta registrada.
type Tool struct {
	Name        string
	Description string
	Handler     Handler
}

// Registry indexa las herramientas por nombre.
type Registry struct {
	tools map[string]Tool
}

// NewRegistry crea un Registry vacío.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register añade una herramienta. Un nombre repetido reemplaza al anterior.
func (r *Registry) Register(t Tool) {
	r.tools[t.Name] = t
}

// Tools devuelve las herramientas registradas ordenadas por nombre.
func (r *Registry) Tools() []Tool {
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Call ejecuta la herramienta por nombre.
func (r *Registry) Call(ctx context.Context, name string, args Args) (string, error) {
	t, ok := r.tools[name]
	if !ok {
		return "", fmt.Errorf("tools.Call: unknown tool %q", name)
	}
	return t.Handler(ctx, args)
}
