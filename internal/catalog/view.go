package catalog

import (
	"context"
	"errors"
	"sync"

	"studentbuy/internal/models"
)

// Source provee el listado completo de productos. El motor no sabe de dónde
// vienen los datos; cada llamada devuelve una instantánea que no se modifica.
type Source interface {
	FetchProducts(ctx context.Context) ([]models.Product, error)
}

// SourceFunc adapta una función a Source
type SourceFunc func(ctx context.Context) ([]models.Product, error)

func (f SourceFunc) FetchProducts(ctx context.Context) ([]models.Product, error) {
	return f(ctx)
}

// ErrSuperseded se devuelve cuando un cambio de filtros más reciente reemplazó
// a la consulta en curso; su resultado se descarta.
var ErrSuperseded = errors.New("query superseded by a newer filter change")

// View es una sesión de navegación sobre una categoría. Guarda el estado de
// filtros y aplica los cambios de a uno. Si llega un cambio mientras otro sigue
// esperando datos, el anterior se cancela y devuelve ErrSuperseded.
type View struct {
	source   Source
	category string

	mu         sync.Mutex
	filters    FilterState
	generation uint64
	cancel     context.CancelFunc
}

func NewView(source Source, category string) *View {
	return &View{
		source:   source,
		category: category,
		filters:  DefaultFilters(),
	}
}

// Filters devuelve una copia del estado actual
func (v *View) Filters() FilterState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filters.Clone()
}

// Update aplica mutate sobre una copia de los filtros, la guarda como estado
// actual y ejecuta la consulta.
func (v *View) Update(ctx context.Context, mutate func(*FilterState)) (Result, error) {
	v.mu.Lock()
	next := v.filters.Clone()
	if mutate != nil {
		mutate(&next)
	}
	v.filters = next
	v.generation++
	gen := v.generation
	if v.cancel != nil {
		v.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.mu.Unlock()

	defer cancel()

	products, err := v.source.FetchProducts(ctx)

	v.mu.Lock()
	stale := gen != v.generation
	if !stale {
		v.cancel = nil
	}
	v.mu.Unlock()

	if stale {
		return Result{}, ErrSuperseded
	}
	if err != nil {
		return Result{}, err
	}
	return Query(products, v.category, next), nil
}

// Refresh vuelve a consultar con los filtros actuales
func (v *View) Refresh(ctx context.Context) (Result, error) {
	return v.Update(ctx, nil)
}

// Clear restablece los filtros por defecto y consulta
func (v *View) Clear(ctx context.Context) (Result, error) {
	return v.Update(ctx, func(f *FilterState) {
		*f = ClearFilters()
	})
}
