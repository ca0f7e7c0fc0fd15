package port

import "preventivi/internal/composer"

// DocumentRenderer turns a composed document into output bytes.
type DocumentRenderer interface {
	RenderHTML(comp composer.Composition) ([]byte, error)
	RenderPDF(comp composer.Composition) ([]byte, error)
}
