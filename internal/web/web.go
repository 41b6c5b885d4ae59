package web

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"job-recommender/internal/analyses"
	"job-recommender/internal/jobsearch"
	"job-recommender/internal/shared/server/middleware"
	"job-recommender/internal/shared/server/respond"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

// Handler serves the browser pages.
type Handler struct {
	Svc             *analyses.Service
	DefaultLocation string
}

// NewHandler constructs a Handler.
func NewHandler(svc *analyses.Service, defaultLocation string) *Handler {
	return &Handler{Svc: svc, DefaultLocation: defaultLocation}
}

// RegisterRoutes attaches page routes. The engine must have Templates installed.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.index)
	r.POST("/analyze", h.analyze)
	r.GET("/sessions/:id", h.show)
	r.POST("/sessions/:id/recommendations", h.recommend)
}

type indexPage struct {
	Error string
}

type resultPage struct {
	Session         analyses.SessionView
	DefaultLocation string
}

func (h *Handler) index(c *gin.Context) {
	respond.HTML(c, http.StatusOK, "index.html", indexPage{})
}

func (h *Handler) analyze(c *gin.Context) {
	upload, err := analyses.ReadUpload(c, h.Svc.MaxUploadBytes)
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx := analyses.WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	session, err := h.Svc.Analyze(ctx, upload)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set(middleware.SessionIDKey, session.ID)
	h.render(c, http.StatusOK, session)
}

func (h *Handler) show(c *gin.Context) {
	sessionID := c.Param("id")
	c.Set(middleware.SessionIDKey, sessionID)
	session, err := h.Svc.Get(c.Request.Context(), sessionID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, session)
}

func (h *Handler) recommend(c *gin.Context) {
	sessionID := c.Param("id")
	c.Set(middleware.SessionIDKey, sessionID)

	q := jobsearch.Query{Location: strings.TrimSpace(c.PostForm("location"))}
	if rows, err := strconv.Atoi(strings.TrimSpace(c.PostForm("rows"))); err == nil && rows > 0 {
		q.Rows = rows
	}

	ctx := analyses.WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	session, err := h.Svc.Recommend(ctx, sessionID, q)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, session)
}

func (h *Handler) render(c *gin.Context, status int, session analyses.Session) {
	respond.HTML(c, status, "result.html", resultPage{
		Session:         analyses.NewSessionView(session),
		DefaultLocation: h.DefaultLocation,
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	p := analyses.Classify(err)
	if step, ok := p.Details["step"].(string); ok {
		c.Set(middleware.StepKey, step)
	}
	respond.HTML(c, p.Status, "index.html", indexPage{Error: p.Message})
}
