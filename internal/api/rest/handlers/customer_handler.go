package handlers

import (
	"errors"
	"net/http"

	"github.com/Dhoini/nice-proxy/internal/domain"
	"github.com/Dhoini/nice-proxy/internal/service"
	"github.com/Dhoini/nice-proxy/pkg/logger"
	"github.com/Dhoini/nice-proxy/pkg/req"
	"github.com/Dhoini/nice-proxy/pkg/res"
	"github.com/gin-gonic/gin"
)

// CustomerHandler обработчик для клиентов
type CustomerHandler struct {
	service service.CustomerService
	log     *logger.Logger
}

// NewCustomerHandler создает новый обработчик клиентов
func NewCustomerHandler(svc service.CustomerService, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: svc,
		log:     log,
	}
}

// InitDB создает таблицу клиентов и заполняет начальными данными
func (h *CustomerHandler) InitDB(c *gin.Context) {
	if err := h.service.Bootstrap(c.Request.Context()); err != nil {
		h.log.Error("Failed to initialize database: %v", err)
		_ = c.Error(err)
		res.JsonErrorResponse(c, res.ErrorResponse{Error: "Failed to initialize database"}, http.StatusInternalServerError)
		return
	}

	h.log.Info("Database initialized")
	res.Message(c, "Database initialized")
}

// GetCustomers возвращает список всех клиентов
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	customers, err := h.service.ListCustomers(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to get customers: %v", err)
		_ = c.Error(err)
		res.JsonErrorResponse(c, res.ErrorResponse{Error: "Failed to get customers"}, http.StatusInternalServerError)
		return
	}

	h.log.Debug("Returned %d customers", len(customers))
	c.JSON(http.StatusOK, customers)
}

// GetCustomer возвращает клиента по customer_id
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id := c.Param("id")

	customer, err := h.service.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get customer", id, err)
		return
	}

	h.log.Debug("Returned customer with ID: %s", id)
	res.Customer(c, customer)
}

// ValidateCustomer проверяет пару customerId/lastName
func (h *CustomerHandler) ValidateCustomer(c *gin.Context) {
	body, err := req.Decode[domain.ValidateCustomerRequest](c.Request.Body)
	if err != nil {
		h.badBody(c, err)
		return
	}

	if err := req.IsValid(body); err != nil {
		h.log.Warn("Validate request missing fields: %v", req.MissingFields(err))
		res.JsonErrorResponse(c, res.ErrorResponse{Error: res.CodeMissingFields, Details: req.MissingFields(err)}, http.StatusBadRequest)
		return
	}

	customer, err := h.service.ValidateCustomer(c.Request.Context(), body.CustomerID, body.LastName)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			res.Fail(c, http.StatusBadRequest, res.CodeMissingFields)
			return
		}
		h.fail(c, "validate customer", body.CustomerID, err)
		return
	}

	h.log.Info("Customer validated: %s", customer.CustomerID)
	res.Customer(c, customer)
}

// AdjustCustomer применяет дельты и частичное обновление к клиенту
func (h *CustomerHandler) AdjustCustomer(c *gin.Context) {
	id := c.Param("id")

	body, err := req.Decode[domain.AdjustCustomerRequest](c.Request.Body)
	if err != nil {
		h.badBody(c, err)
		return
	}

	customer, err := h.service.AdjustCustomer(c.Request.Context(), id, body.ToAdjustment())
	if err != nil {
		h.fail(c, "adjust customer", id, err)
		return
	}

	h.log.Info("Adjusted customer with ID: %s", id)
	res.Customer(c, customer)
}

// fail переводит ошибку сервиса в HTTP-ответ
func (h *CustomerHandler) fail(c *gin.Context, op, id string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		h.log.Warn("Invalid input for %s: %q", op, id)
		res.Fail(c, http.StatusBadRequest, res.CodeInvalidInput)
	case errors.Is(err, domain.ErrNotFound):
		h.log.Warn("Customer not found (%s): %s", op, id)
		res.Fail(c, http.StatusNotFound, res.CodeNotFound)
	default:
		h.log.Error("Failed to %s %s: %v", op, id, err)
		_ = c.Error(err)
		res.Fail(c, http.StatusInternalServerError, res.CodeError)
	}
}

// badBody отвечает на тело запроса, которое не удалось прочитать
func (h *CustomerHandler) badBody(c *gin.Context, err error) {
	if req.IsTypeMismatch(err) {
		h.log.Warn("Invalid request body for %s: %v", c.FullPath(), err)
		res.Fail(c, http.StatusBadRequest, res.CodeInvalidInput)
		return
	}
	h.log.Error("Failed to read request body for %s: %v", c.FullPath(), err)
	_ = c.Error(err)
	res.Fail(c, http.StatusInternalServerError, res.CodeError)
}
