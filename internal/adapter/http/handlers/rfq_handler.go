package handlers

import (
	"errors"
	"io"
	"net/http"

	request "milling_aggregator/internal/adapter/http/dto/request"
	response "milling_aggregator/internal/adapter/http/dto/response"
	"milling_aggregator/internal/usecase"
	"milling_aggregator/pkg"

	"github.com/gin-gonic/gin"
)

const cadFileField = "cad_file"

var errUploadTooLarge = pkg.NewDomainErrorSimple("UPLOAD_TOO_LARGE", "CAD file exceeds the upload limit", http.StatusRequestEntityTooLarge)

// RFQHandler handles HTTP requests for buyer RFQs.

type RFQHandler struct {
	usecase        usecase.IRFQUseCase
	maxUploadBytes int64
}

// NewRFQHandler creates the handler. maxUploadBytes <= 0 disables the body limit.
func NewRFQHandler(uc usecase.IRFQUseCase, maxUploadBytes int64) *RFQHandler {
	return &RFQHandler{usecase: uc, maxUploadBytes: maxUploadBytes}
}

// CreateRFQ godoc
// @Summary      Submit an RFQ
// @Description  Multipart form with the part specification and an optional CAD file (dxf, dwg, step, stp, iges, igs, stl, zip).
// @Tags         rfqs
// @Accept       multipart/form-data
// @Produce      json
// @Param        material       formData  string  true   "Material from the catalog"
// @Param        quantity       formData  int     true   "Quantity, at least 1"
// @Param        tolerance      formData  string  false  "Tolerance"
// @Param        roughness      formData  string  false  "Surface roughness"
// @Param        part_marking   formData  bool    false  "Part marking"
// @Param        certification  formData  string  false  "None, ISO 9001 or AS9100"
// @Param        notes          formData  string  false  "Notes"
// @Param        cad_file       formData  file    false  "CAD file"
// @Success      201  {object}  response.RFQResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      401  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /rfqs [post]
func (h *RFQHandler) CreateRFQ(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	var payload request.RFQRequest
	if err := c.ShouldBind(&payload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondAppError(c, errUploadTooLarge)
			return
		}
		respondAppError(c, errInvalidPayload)
		return
	}

	cad, appErr := readCADAttachment(c)
	if appErr != nil {
		respondAppError(c, appErr)
		return
	}

	rfq, err := h.usecase.Submit(c.Request.Context(), caller, payload.ToSpec(), cad)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.FromRFQ(rfq))
}

// ListRFQs godoc
// @Summary      List the caller's RFQs, newest first
// @Tags         rfqs
// @Produce      json
// @Success      200  {array}   response.RFQResponse
// @Failure      401  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /rfqs [get]
func (h *RFQHandler) ListRFQs(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	rfqs, err := h.usecase.ListFor(c.Request.Context(), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromRFQs(rfqs))
}

// GetRFQ godoc
// @Summary      Get one of the caller's RFQs
// @Tags         rfqs
// @Produce      json
// @Param        id   path      string  true  "RFQ ID"
// @Success      200  {object}  response.RFQResponse
// @Failure      404  {object}  pkg.HTTPError
// @Security     Bearer
// @Router       /rfqs/{id} [get]
func (h *RFQHandler) GetRFQ(c *gin.Context) {
	caller, ok := mustCaller(c)
	if !ok {
		return
	}

	rfq, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"), caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.FromRFQ(rfq))
}

func readCADAttachment(c *gin.Context) (*usecase.CADAttachment, *pkg.AppError) {
	fh, err := c.FormFile(cadFileField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errUploadTooLarge
		}
		return nil, errInvalidPayload
	}

	f, err := fh.Open()
	if err != nil {
		return nil, errInvalidPayload
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errInvalidPayload
	}
	return &usecase.CADAttachment{Filename: fh.Filename, Data: data}, nil
}
