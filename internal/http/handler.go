package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"warehouse-service/internal/config"
	"warehouse-service/internal/service"
)

type Handler struct {
	warehouseService *service.WarehouseService
	sessionService   *service.SessionService
	workerService    *service.WorkerService
	cameraService    *service.CameraService
	config           *config.Config
	log              zerolog.Logger
}

func NewHandler(
	warehouseService *service.WarehouseService,
	sessionService *service.SessionService,
	workerService *service.WorkerService,
	cameraService *service.CameraService,
	cfg *config.Config,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		warehouseService: warehouseService,
		sessionService:   sessionService,
		workerService:    workerService,
		cameraService:    cameraService,
		config:           cfg,
		log:              log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	// Public endpoints
	public := r.Group("/api/v1")
	{
		public.GET("/warehouses", h.listWarehouses)
		public.GET("/warehouses/:warehouse_id", h.getWarehouse)
		public.GET("/warehouses/:warehouse_id/dashboard", h.warehouseDashboard)
		public.GET("/warehouse-status", h.warehouseStatus)
		public.GET("/vehicles", h.listVehicles)
		public.GET("/warehouses/:warehouse_id/cameras/:camera_id/sessions", h.cameraSessions)
		public.GET("/warehouses/:warehouse_id/cameras/:camera_id/analytics/vehicle-gunny-count", h.vehicleGunnyCount)
		public.GET("/warehouses/:warehouse_id/cameras/:camera_id/logs/vehicles", h.vehicleLogs)
		public.GET("/warehouses/:warehouse_id/cameras/:camera_id/logs/gunny-bags", h.gunnyLogs)
		public.GET("/warehouses/:warehouse_id/worker-logs", h.workerLogs)
		public.GET("/cameras/:camera_id/chunks", h.cameraChunks)
		public.GET("/chunks/:chunk_id/transcript", h.chunkTranscript)
	}

	// Protected endpoints
	protected := r.Group("/api/v1")
	protected.Use(authMiddleware)
	{
		protected.GET("/cameras/:camera_id/stream-url", h.streamURL)
	}
}

func (h *Handler) listWarehouses(c *gin.Context) {
	warehouses, err := h.warehouseService.ListWarehouses(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(warehouses))
}

func (h *Handler) getWarehouse(c *gin.Context) {
	detail, err := h.warehouseService.GetWarehouse(c.Request.Context(), c.Param("warehouse_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(detail))
}

func (h *Handler) warehouseDashboard(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		c.JSON(http.StatusBadRequest, errorResponse("date parameter is required"))
		return
	}

	dashboard, err := h.warehouseService.Dashboard(c.Request.Context(), c.Param("warehouse_id"), date)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(dashboard))
}

func (h *Handler) vehicleGunnyCount(c *gin.Context) {
	cameraID, ok := h.cameraIDParam(c)
	if !ok {
		return
	}
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		c.JSON(http.StatusBadRequest, errorResponse("date parameter is required"))
		return
	}

	analytics, err := h.sessionService.VehicleGunnyCount(c.Request.Context(), c.Param("warehouse_id"), cameraID, date)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(analytics))
}

func (h *Handler) listVehicles(c *gin.Context) {
	vehicles, err := h.warehouseService.ListRegisteredVehicles(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(vehicles))
}

func (h *Handler) warehouseStatus(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		c.JSON(http.StatusBadRequest, errorResponse("date parameter is required"))
		return
	}

	summary, err := h.warehouseService.StatusSummary(c.Request.Context(), date)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(summary))
}

func (h *Handler) cameraSessions(c *gin.Context) {
	cameraID, ok := h.cameraIDParam(c)
	if !ok {
		return
	}
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		c.JSON(http.StatusBadRequest, errorResponse("date parameter is required"))
		return
	}

	report, err := h.sessionService.CameraDayReport(c.Request.Context(), c.Param("warehouse_id"), cameraID, date)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(report))
}

func (h *Handler) vehicleLogs(c *gin.Context) {
	cameraID, ok := h.cameraIDParam(c)
	if !ok {
		return
	}
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		c.JSON(http.StatusBadRequest, errorResponse("date parameter is required"))
		return
	}

	digest, err := h.sessionService.VehicleLogDigest(c.Request.Context(), c.Param("warehouse_id"), cameraID, date)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(digest))
}

func (h *Handler) gunnyLogs(c *gin.Context) {
	cameraID, ok := h.cameraIDParam(c)
	if !ok {
		return
	}
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		c.JSON(http.StatusBadRequest, errorResponse("date parameter is required"))
		return
	}

	digest, err := h.sessionService.GunnyLogDigest(c.Request.Context(), c.Param("warehouse_id"), cameraID, date)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(digest))
}

func (h *Handler) workerLogs(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		c.JSON(http.StatusBadRequest, errorResponse("date parameter is required"))
		return
	}

	report, err := h.workerService.HourlyLogs(c.Request.Context(), c.Param("warehouse_id"), date)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(report))
}

func (h *Handler) cameraChunks(c *gin.Context) {
	cameraID, ok := h.cameraIDParam(c)
	if !ok {
		return
	}

	chunks, err := h.cameraService.Chunks(c.Request.Context(), cameraID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(chunks))
}

func (h *Handler) chunkTranscript(c *gin.Context) {
	chunkID, err := strconv.ParseInt(c.Param("chunk_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("chunk_id must be an integer"))
		return
	}

	transcript, err := h.cameraService.Transcript(c.Request.Context(), chunkID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(transcript))
}

func (h *Handler) streamURL(c *gin.Context) {
	cameraID, ok := h.cameraIDParam(c)
	if !ok {
		return
	}

	result, err := h.cameraService.StreamURL(c.Request.Context(), cameraID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) cameraIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("camera_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("camera_id must be an integer"))
		return 0, false
	}
	return id, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}
