package resumes

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-jobmatch/internal/extract"
	"resume-jobmatch/internal/jobs"
	"resume-jobmatch/internal/shared/server/respond"
)

// UploadField is the multipart field carrying the resume file.
const UploadField = "resume"

const defaultMaxUploadBytes = 10 << 20

// JobFinder searches postings for a skill set and never fails.
type JobFinder interface {
	FindJobs(ctx context.Context, skills []string, opts jobs.SearchOptions) []jobs.JobListing
}

// Handler wires HTTP handlers to the intake pipeline and service.
type Handler struct {
	Pipeline       *Pipeline
	Svc            *Service
	Jobs           JobFinder
	MaxUploadBytes int64
}

// NewHandler constructs a Handler. A non-positive limit uses 10 MiB.
func NewHandler(pipeline *Pipeline, svc *Service, finder JobFinder, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &Handler{Pipeline: pipeline, Svc: svc, Jobs: finder, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/upload", h.upload)
	rg.GET("/resumes/:id/skills", h.getSkills)
	rg.GET("/resumes/:id/jobs", h.matchJobs)
}

// upload godoc
// @Summary      Upload a resume
// @Description  Extracts text and skills from a PDF or DOCX resume and stores the result.
// @Tags         resumes
// @Accept       multipart/form-data
// @Produce      json
// @Param        resume  formData  file  true  "PDF or DOCX resume"
// @Success      200  {object}  UploadResponse
// @Failure      400  {object}  respond.ErrorResponse
// @Failure      500  {object}  respond.ErrorResponse
// @Router       /resumes/upload [post]
func (h *Handler) upload(c *gin.Context) {
	c.Set("intakeStage", string(StageReceived))
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	fileHeader, err := c.FormFile(UploadField)
	if c.Request.MultipartForm != nil {
		defer c.Request.MultipartForm.RemoveAll()
	}
	if err != nil {
		c.Set("intakeStage", string(StageFailed))
		if errors.Is(err, http.ErrMissingFile) {
			respond.Error(c, http.StatusBadRequest, "missing_file", "No file uploaded", "")
			return
		}
		respond.Error(c, http.StatusBadRequest, "upload_failed", "File upload failed", err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Set("intakeStage", string(StageFailed))
		respond.Error(c, http.StatusBadRequest, "upload_failed", "File upload failed", err.Error())
		return
	}
	defer file.Close()

	in, err := h.Pipeline.Run(c.Request.Context(), fileHeader.Filename, file)
	c.Set("intakeStage", string(in.Stage))
	if err != nil {
		var extractErr *extract.ExtractionError
		switch {
		case errors.Is(err, ErrInvalidFileType):
			respond.Error(c, http.StatusBadRequest, "invalid_file_type", "Invalid file format", "Only PDF and DOCX files are allowed")
		case errors.As(err, &extractErr):
			respond.Error(c, http.StatusBadRequest, "extraction_failed", "Failed to extract text from file", extractErr.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "intake_failed", "Error processing resume", "")
		}
		return
	}

	c.Set("resumeId", in.Persist.ID)
	c.Set("intakeStage", string(StageResponded))
	respond.OK(c, toUploadResponse(in))
}

// getSkills godoc
// @Summary  Skills stored for a resume
// @Tags     resumes
// @Produce  json
// @Param    id   path  string  true  "Resume ID"
// @Success  200  {object}  SkillsResponse
// @Failure  404  {object}  respond.ErrorResponse
// @Failure  500  {object}  respond.ErrorResponse
// @Router   /resumes/{id}/skills [get]
func (h *Handler) getSkills(c *gin.Context) {
	id := c.Param("id")
	c.Set("resumeId", id)

	resume, err := h.Svc.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Resume not found", "")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "lookup_failed", "Error fetching skills", "")
		return
	}

	skills := resume.Skills
	if skills == nil {
		skills = []string{}
	}
	respond.OK(c, SkillsResponse{Skills: skills})
}

// matchJobs godoc
// @Summary      Job postings matching a resume
// @Description  Uses the stored skills for id, or the skills query parameter when id is synthetic or cannot be resolved.
// @Tags         resumes
// @Produce      json
// @Param        id       path   string  true   "Resume ID"
// @Param        skills   query  string  false  "Comma-separated fallback skills"
// @Param        country  query  string  false  "Two-letter country code"
// @Param        limit    query  int     false  "Results per page (1-50)"
// @Success      200  {object}  JobsResponse
// @Failure      400  {object}  respond.ErrorResponse
// @Failure      404  {object}  respond.ErrorResponse
// @Failure      500  {object}  respond.ErrorResponse
// @Router       /resumes/{id}/jobs [get]
func (h *Handler) matchJobs(c *gin.Context) {
	id := c.Param("id")
	c.Set("resumeId", id)

	var q jobsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid query parameters", err.Error())
		return
	}

	skills, err := h.Svc.ResolveJobSkills(c.Request.Context(), id, ParseSkillsParam(q.Skills))
	if err != nil {
		switch {
		case errors.Is(err, ErrNoResumeID):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid resume ID and no skills provided", skillsQueryHint)
		case errors.Is(err, ErrNoSkillsAvailable):
			respond.Error(c, http.StatusBadRequest, "validation_error", "No skills available", skillsQueryHint)
		case errors.Is(err, ErrUnresolvable):
			respond.Error(c, http.StatusNotFound, "not_found", "Resume not found and no fallback skills provided", unresolvableHint)
		case errors.Is(err, ErrNoSkillsToMatch):
			respond.Error(c, http.StatusBadRequest, "validation_error", "No skills found to match jobs", "")
		default:
			respond.Error(c, http.StatusInternalServerError, "jobs_failed", "Server error", "")
		}
		return
	}

	listings := h.Jobs.FindJobs(c.Request.Context(), skills, jobs.SearchOptions{Country: q.Country, Limit: q.Limit})
	if listings == nil {
		listings = []jobs.JobListing{}
	}
	respond.OK(c, JobsResponse{Skills: skills, Jobs: listings})
}
