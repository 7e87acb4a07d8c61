package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/gravadigital/eventos-api/internal/response"
	"github.com/gravadigital/eventos-api/internal/services"
)

type CertificateHandler struct {
	certificateService *services.CertificateService
}

func NewCertificateHandler(certificateService *services.CertificateService) *CertificateHandler {
	return &CertificateHandler{certificateService: certificateService}
}

// IssueForEvent handles POST /api/events/:id/certificates
func (h *CertificateHandler) IssueForEvent(c *gin.Context) {
	identity, ok := actor(c)
	if !ok {
		return
	}
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}

	certs, err := h.certificateService.IssueForEvent(c.Request.Context(), identity, eventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Certificates issued", certs)
}

// Verify handles GET /api/certificates/:code
func (h *CertificateHandler) Verify(c *gin.Context) {
	cert, err := h.certificateService.Verify(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cert)
}
