package render

import (
	"net/http"

	"github.com/vango-dev/vbind/pkg/vdom"
)

// StreamingRenderer renders documents to an http.ResponseWriter and
// flushes after the head element for faster first paint.
type StreamingRenderer struct {
	*Renderer
	flusher http.Flusher
	w       http.ResponseWriter
}

// NewStreamingRenderer creates a streaming renderer. If w does not
// implement http.Flusher, output is simply written through.
func NewStreamingRenderer(w http.ResponseWriter, config Config) *StreamingRenderer {
	flusher, _ := w.(http.Flusher)
	s := &StreamingRenderer{
		Renderer: NewRenderer(config),
		flusher:  flusher,
		w:        w,
	}
	s.Renderer.afterHead = s.flush
	return s
}

// Render writes doc, flushing after the head and once more at the end.
func (s *StreamingRenderer) Render(doc *vdom.Document) error {
	if err := s.RenderDocument(s.w, doc); err != nil {
		return err
	}
	s.flush()
	return nil
}

func (s *StreamingRenderer) flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}
