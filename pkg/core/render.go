package core

import (
	"context"
	"fmt"
)

// Renderer consumes the views produced by a build. Template rendering and
// output writing live behind this interface.
type Renderer interface {
	Render(ctx context.Context, v View) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, v View) error

// Render calls f(ctx, v).
func (f RendererFunc) Render(ctx context.Context, v View) error { return f(ctx, v) }

// View returns the renderer-facing shape of r.
func (r Record) View(collection string) View {
	return View{
		Collection: collection,
		Identifier: r.Key,
		Data:       r.Data.Clone(),
		Body:       r.Content,
	}
}

// View returns the renderer-facing shape of p.
func (p SyntheticPage) View(collection string) View {
	return View{
		Collection: collection,
		Identifier: p.Identifier,
		Data:       p.Data.Clone(),
		Body:       p.Body,
	}
}

// Dispatch feeds every record of primary and then every page of derived to r.
// It stops at the first render error.
func Dispatch(ctx context.Context, s *Store, primary, derived string, r Renderer) error {
	for _, rec := range s.Iterate(primary) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Render(ctx, rec.View(primary)); err != nil {
			return fmt.Errorf("render %s: %w", rec.Key, err)
		}
	}
	for _, p := range s.Pages(derived) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Render(ctx, p.View(derived)); err != nil {
			return fmt.Errorf("render %s: %w", p.Identifier, err)
		}
	}
	return nil
}
