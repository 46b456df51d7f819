package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/mp-classroom/classroom-gateway/internal/access"
	"github.com/mp-classroom/classroom-gateway/internal/backend"
	"github.com/mp-classroom/classroom-gateway/internal/models"
	"github.com/mp-classroom/classroom-gateway/internal/report"
	"github.com/mp-classroom/classroom-gateway/internal/token"
	"github.com/mp-classroom/classroom-gateway/internal/utils"
)

type ReportHandler struct {
	BaseHandler
	backend  *backend.Client
	resolver *UserResolver
	carrier  *token.Carrier
}

func NewReportHandler(client *backend.Client, resolver *UserResolver, carrier *token.Carrier, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler: NewBaseHandler(logger),
		backend:     client,
		resolver:    resolver,
		carrier:     carrier,
	}
}

// Anomalies lists flagged commit irregularities. Students see only their
// own records; every other role sees the whole cohort.
func (h *ReportHandler) Anomalies(c *gin.Context) {
	tok, ok := h.carrier.FromRequest(c.Request)
	if !ok {
		h.Unauthorized(c)
		return
	}

	user, err := h.resolver.Resolve(c.Request.Context(), tok)
	if err != nil {
		h.UpstreamError(c, err)
		return
	}

	anomalies, err := h.backend.Anomalies(c.Request.Context(), tok)
	if err != nil {
		h.LogError(c, err, "anomalies fetch failed")
		h.UpstreamError(c, err)
		return
	}

	if !access.For(user.ParsedRole()).ViewAllRecords {
		anomalies = filterAnomalies(anomalies, user.Github)
	}
	c.JSON(http.StatusOK, anomalies)
}

// Copies lists detected submission similarities, newest first. Students see
// only pairs they are part of.
func (h *ReportHandler) Copies(c *gin.Context) {
	tok, ok := h.carrier.FromRequest(c.Request)
	if !ok {
		h.Unauthorized(c)
		return
	}

	user, err := h.resolver.Resolve(c.Request.Context(), tok)
	if err != nil {
		h.UpstreamError(c, err)
		return
	}

	copies, err := h.backend.Copies(c.Request.Context(), tok)
	if err != nil {
		h.LogError(c, err, "copies fetch failed")
		h.UpstreamError(c, err)
		return
	}

	sort.Slice(copies, func(i, j int) bool {
		return copies[i].DetectedAt.After(copies[j].DetectedAt)
	})

	if !access.For(user.ParsedRole()).ViewAllRecords {
		copies = filterCopies(copies, user.Github)
	}
	c.JSON(http.StatusOK, copies)
}

// Export streams both record sets as a spreadsheet for offline review.
func (h *ReportHandler) Export(c *gin.Context) {
	tok, ok := h.carrier.FromRequest(c.Request)
	if !ok {
		h.Unauthorized(c)
		return
	}

	user, err := h.resolver.Resolve(c.Request.Context(), tok)
	if err != nil {
		h.UpstreamError(c, err)
		return
	}
	if !access.For(user.ParsedRole()).ExportReports {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: msgNoAccess})
		return
	}

	ctx := c.Request.Context()
	anomalies, err := h.backend.Anomalies(ctx, tok)
	if err != nil {
		h.LogError(c, err, "anomalies fetch for export failed")
		h.UpstreamError(c, err)
		return
	}
	copies, err := h.backend.Copies(ctx, tok)
	if err != nil {
		h.LogError(c, err, "copies fetch for export failed")
		h.UpstreamError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="report.xlsx"`)
	if err := report.WriteXLSX(c.Writer, anomalies, copies); err != nil {
		h.LogError(c, err, "report export failed")
	}
}

func filterAnomalies(anomalies []models.Anomaly, github string) []models.Anomaly {
	out := make([]models.Anomaly, 0, len(anomalies))
	for _, a := range anomalies {
		if a.GithubLogin == github {
			out = append(out, a)
		}
	}
	return out
}

func filterCopies(copies []models.Copy, github string) []models.Copy {
	out := make([]models.Copy, 0, len(copies))
	for _, cp := range copies {
		if cp.GithubLogin1 == github || cp.GithubLogin2 == github {
			out = append(out, cp)
		}
	}
	return out
}
