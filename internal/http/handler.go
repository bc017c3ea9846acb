package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"oiltrack-service/internal/service"
)

type Handler struct {
	ledgerService  *service.LedgerService
	exportService  *service.ExportService
	vehicleService *service.VehicleService
	log            zerolog.Logger
}

func NewHandler(
	ledgerService *service.LedgerService,
	exportService *service.ExportService,
	vehicleService *service.VehicleService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		ledgerService:  ledgerService,
		exportService:  exportService,
		vehicleService: vehicleService,
		log:            log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	api := r.Group("/")
	if authMiddleware != nil {
		api.Use(authMiddleware)
	}

	oilTypes := api.Group("/oil-types")
	{
		oilTypes.POST("", h.registerOilType)
		oilTypes.GET("", h.listOilTypes)
		oilTypes.GET("/:name", h.getOilType)
		oilTypes.POST("/:name/readings", h.recordReading)
		oilTypes.POST("/:name/reset", h.resetOilType)
		oilTypes.GET("/:name/status", h.getOilTypeStatus)
	}

	api.GET("/history", h.listHistory)
	api.POST("/export", h.exportSnapshot)

	api.POST("/vehicles", h.addVehicle)
	api.GET("/vehicles/latest", h.getLatestVehicle)

	api.POST("/tires", h.addTire)
	api.GET("/tires", h.listTires)
}

func (h *Handler) registerOilType(c *gin.Context) {
	var req struct {
		Name          string  `json:"name" binding:"required"`
		MaxDistance   int64   `json:"max_distance"`
		LiterCapacity float64 `json:"liter_capacity"`
		Grade         string  `json:"grade"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	oil, err := h.ledgerService.RegisterOilType(c.Request.Context(), req.Name, req.MaxDistance, req.LiterCapacity, req.Grade)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(oil))
}

func (h *Handler) listOilTypes(c *gin.Context) {
	oils, err := h.ledgerService.ListOilTypes(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(oils))
}

func (h *Handler) getOilType(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid oil type name"))
		return
	}

	oil, err := h.ledgerService.GetOilType(c.Request.Context(), name)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(oil))
}

func (h *Handler) recordReading(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid oil type name"))
		return
	}

	var req struct {
		DistanceDelta   int64  `json:"distance_delta" binding:"required"`
		VehicleCategory string `json:"vehicle_category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	result, err := h.ledgerService.RecordReading(c.Request.Context(), name, req.DistanceDelta, req.VehicleCategory)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(result))
}

func (h *Handler) resetOilType(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid oil type name"))
		return
	}

	oil, err := h.ledgerService.ResetOilType(c.Request.Context(), name)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(oil))
}

func (h *Handler) getOilTypeStatus(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid oil type name"))
		return
	}

	oil, err := h.ledgerService.GetOilType(c.Request.Context(), name)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(service.BuildAlert(oil)))
}

func (h *Handler) listHistory(c *gin.Context) {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, errorResponse("invalid limit"))
			return
		}
		limit = parsed
	}

	events, err := h.ledgerService.ListHistory(c.Request.Context(), limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(events))
}

func (h *Handler) exportSnapshot(c *gin.Context) {
	info, err := h.exportService.ExportSnapshot(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(info))
}

func (h *Handler) addVehicle(c *gin.Context) {
	var req struct {
		CarType         string `json:"car_type" binding:"required"`
		ManufactureYear int    `json:"manufacture_year"`
		CurrentMileage  int64  `json:"current_mileage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	vehicle, err := h.vehicleService.AddVehicle(c.Request.Context(), req.CarType, req.ManufactureYear, req.CurrentMileage)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(vehicle))
}

func (h *Handler) getLatestVehicle(c *gin.Context) {
	vehicle, err := h.vehicleService.GetLatestVehicle(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) addTire(c *gin.Context) {
	var req struct {
		TireType     string `json:"tire_type" binding:"required"`
		InstallDate  string `json:"install_date"`
		ExpectedLife int64  `json:"expected_life"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	tire, err := h.vehicleService.AddTire(c.Request.Context(), req.TireType, req.InstallDate, req.ExpectedLife)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(tire))
}

func (h *Handler) listTires(c *gin.Context) {
	tires, err := h.vehicleService.ListTires(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(tires))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrPersistence):
		h.log.Error().Err(err).Msg("store error")
		c.JSON(http.StatusInternalServerError, errorResponse("storage unavailable"))
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
