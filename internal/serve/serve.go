// Package serve exposes the generated archive over HTTP for browsing.
// Pages are rendered on request from the generated markdown; the server
// is read-only and keeps no state.
package serve

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"searchive/internal/config"
	"searchive/internal/utils"
)

const layout = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{ .Title }}</title>
<style>
body { max-width: 48rem; margin: 2rem auto; padding: 0 1rem; font-family: sans-serif; line-height: 1.5; }
pre { overflow-x: auto; background: #f6f6f6; padding: .75rem; }
code { background: #f6f6f6; }
</style>
</head>
<body>
{{ .Content }}
</body>
</html>
`

type Server struct {
	cfg  *config.Config
	tmpl *template.Template
}

// NewRouter builds the gin engine serving the archive under cfg.OutDir.
func NewRouter(cfg *config.Config) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:  cfg,
		tmpl: template.Must(template.New("layout").Parse(layout)),
	}

	r := gin.Default()
	r.GET("/", s.Index)
	r.GET("/questions", s.Index)
	r.GET("/questions/:id/:slug", s.Question)
	return r
}

// Run serves until the process is killed.
func Run(cfg *config.Config) error {
	log.Info().Str("addr", cfg.Addr).Msg("archive preview server starting")
	return NewRouter(cfg).Run(cfg.Addr)
}

func (s *Server) Index(c *gin.Context) {
	s.renderPage(c, "All Questions", filepath.Join(s.cfg.OutDir, "questions", "index.md"))
}

func (s *Server) Question(c *gin.Context) {
	id := c.Param("id")
	if _, err := strconv.Atoi(id); err != nil {
		c.String(http.StatusNotFound, "not found")
		return
	}
	slug := filepath.Base(c.Param("slug"))
	s.renderPage(c, slug, filepath.Join(s.cfg.OutDir, "questions", id, slug+".md"))
}

func (s *Server) renderPage(c *gin.Context, title, path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		c.String(http.StatusNotFound, "not found")
		return
	}

	var page struct {
		Title   string
		Content template.HTML
	}
	page.Title = title
	page.Content = utils.RenderMarkdown(string(source))

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(c.Writer, page); err != nil {
		log.Error().Err(err).Str("path", path).Msg("template render failed")
	}
}
