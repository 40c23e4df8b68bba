package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/maxmalik/FORE/controller"
	"github.com/maxmalik/FORE/model"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

//go:embed templates
var templates embed.FS

type Server struct {
	server *http.Server
	logger *zap.Logger
}

// Options controls how the web layer behaves.
type Options struct {
	Port int
	// CookieSecure marks the session cookie Secure, for deployments behind
	// TLS.
	CookieSecure bool
	// RequestTimeout cancels a request's context. It should outlast the
	// backend timeout.
	RequestTimeout time.Duration
}

const defaultRequestTimeout = 45 * time.Second

func NewServer(opts Options, ctrl controller.C, logger *zap.Logger) (*Server, error) {
	if ctrl == nil {
		return nil, fmt.Errorf("a controller is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}

	render := newRender()
	router := getRouter(ctrl, render, logger, opts)

	s := &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
	return s, nil
}

func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			s.logger.Fatal("fatal error shutting down server", zap.Error(err))
		}
	}()

	s.logger.Info("web server is listening", zap.String("addr", s.server.Addr))
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		s.logger.Fatal("fatal error with server", zap.Error(err))
	}
}

func newRender() *render.Render {
	return render.New(render.Options{
		Directory: "templates",
		Layout:    "layout",
		FileSystem: &render.EmbedFileSystem{
			FS: templates,
		},
		Funcs: []template.FuncMap{
			{
				"ago":          agoFormatter,
				"date":         dateFormatter,
				"comma":        commaFormatter,
				"differential": differentialFormatter,
				"length":       lengthFormatter,
				"plural":       pluralFormatter,
				"chart":        handicapChart,
			},
		},
	})
}

func agoFormatter(t time.Time) string {
	if t.IsZero() {
		return "some time ago"
	}
	return humanize.Time(t)
}

func dateFormatter(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Format("Jan 2, 2006")
}

func commaFormatter(n int) string {
	return humanize.Comma(int64(n))
}

func differentialFormatter(d float64) string {
	return fmt.Sprintf("%.1f", d)
}

// lengthFormatter shows a tee box's total length, e.g. "6,864 yards".
func lengthFormatter(c *model.Course, teeBox int) string {
	if c == nil {
		return ""
	}
	y, ok := c.TotalYards(teeBox)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s %s", humanize.Comma(int64(y)), c.LengthUnit())
}

func pluralFormatter(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
