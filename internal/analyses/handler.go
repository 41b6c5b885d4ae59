package analyses

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"job-recommender/internal/jobsearch"
	"job-recommender/internal/shared/server/middleware"
	"job-recommender/internal/shared/server/respond"
	"job-recommender/internal/shared/util"
)

// ResumeField is the multipart form field carrying the PDF.
const ResumeField = "resume"

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.createAnalysis)
	rg.GET("/analyses/:id", h.getAnalysis)
	rg.POST("/analyses/:id/recommendations", h.recommend)
}

type recommendRequest struct {
	Location string `json:"location"`
	Rows     int    `json:"rows"`
}

func (h *Handler) createAnalysis(c *gin.Context) {
	upload, err := ReadUpload(c, h.Svc.MaxUploadBytes)
	if err != nil {
		writeProblem(c, err)
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	session, err := h.Svc.Analyze(ctx, upload)
	if err != nil {
		writeProblem(c, err)
		return
	}
	c.Set(middleware.SessionIDKey, session.ID)
	respond.JSON(c, http.StatusCreated, NewSessionView(session))
}

func (h *Handler) getAnalysis(c *gin.Context) {
	sessionID := c.Param("id")
	c.Set(middleware.SessionIDKey, sessionID)
	session, err := h.Svc.Get(c.Request.Context(), sessionID)
	if err != nil {
		writeProblem(c, err)
		return
	}
	respond.OK(c, NewSessionView(session))
}

func (h *Handler) recommend(c *gin.Context) {
	sessionID := c.Param("id")
	c.Set(middleware.SessionIDKey, sessionID)

	var req recommendRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid JSON body", nil)
			return
		}
	}
	if req.Rows < 0 {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "rows must not be negative", nil)
		return
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	session, err := h.Svc.Recommend(ctx, sessionID, jobsearch.Query{Location: req.Location, Rows: req.Rows})
	if err != nil {
		writeProblem(c, err)
		return
	}
	respond.OK(c, NewRecommendationView(*session.Recommendation))
}

// ReadUpload pulls the resume file out of a multipart request.
func ReadUpload(c *gin.Context, maxBytes int64) (Upload, error) {
	fh, err := c.FormFile(ResumeField)
	if err != nil {
		return Upload{}, ErrMissingResume
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return Upload{}, ErrUploadTooBig
	}
	f, err := fh.Open()
	if err != nil {
		return Upload{}, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return Upload{}, err
	}
	if len(data) == 0 {
		return Upload{}, ErrEmptyUpload
	}
	return Upload{
		FileName: util.DisplayFileName(fh.Filename),
		MimeType: fh.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}

func writeProblem(c *gin.Context, err error) {
	p := Classify(err)
	if step, ok := p.Details["step"].(string); ok {
		c.Set(middleware.StepKey, step)
	}
	var details any
	if len(p.Details) > 0 {
		details = p.Details
	}
	respond.Error(c, p.Status, p.Code, p.Message, details)
}
