package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mwarren/crmapi/internal/api/dto"
	"github.com/mwarren/crmapi/internal/core/domain"
	"github.com/mwarren/crmapi/internal/core/repository"
	"github.com/mwarren/crmapi/internal/core/service"
	"go.uber.org/zap"
)

type ClientHandler struct {
	clientService *service.ClientService
	logger        *zap.Logger
}

func NewClientHandler(clientService *service.ClientService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		logger:        logger,
	}
}

// ListClients handles GET /clients
//
//	@Summary	List clients with search, sort and pagination
//	@Tags		clients
//	@Produce	json
//	@Param		query		query		string	false	"Free-text search over name, email, phone and company"
//	@Param		page		query		int		false	"Page number (1-based)"
//	@Param		pageSize	query		int		false	"Page size (1-100, default 10)"
//	@Param		sort		query		string	false	"Sort field: firstName, lastName, email, company or createdAt"
//	@Param		dir			query		string	false	"Sort direction: asc or desc"
//	@Param		isActive	query		bool	false	"Restrict to active or inactive clients"
//	@Success	200			{object}	dto.ClientListResponse
//	@Router		/clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	filter := repository.ClientFilter{
		Query:    c.Query("query"),
		Sort:     c.DefaultQuery("sort", "lastName"),
		Dir:      c.DefaultQuery("dir", "asc"),
		Page:     page,
		PageSize: pageSize,
	}

	if isActiveStr := c.Query("isActive"); isActiveStr != "" {
		if isActive, err := strconv.ParseBool(isActiveStr); err == nil {
			filter.IsActive = &isActive
		}
	}

	// Clamp before the call so the response echoes the effective values.
	filter.Normalize()

	clients, total, err := h.clientService.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list clients", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{
			Message: "Failed to list clients.",
		})
		return
	}

	items := make([]dto.ClientListItem, len(clients))
	for i, client := range clients {
		items[i] = toClientListItem(client)
	}

	c.JSON(http.StatusOK, dto.ClientListResponse{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Sort:     filter.Sort,
		Dir:      filter.Dir,
	})
}

// GetClient handles GET /clients/:id
//
//	@Summary	Get a client by ID
//	@Tags		clients
//	@Produce	json
//	@Param		id	path		string	true	"Client ID"
//	@Success	200	{object}	dto.ClientDetailResponse
//	@Failure	404	{object}	dto.MessageResponse
//	@Router		/clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	id := c.Param("id")

	client, err := h.clientService.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, id, err)
		return
	}

	c.JSON(http.StatusOK, toClientDetailResponse(client))
}

// CreateClient handles POST /clients
//
//	@Summary	Create a new client
//	@Tags		clients
//	@Accept		json
//	@Produce	json
//	@Param		client	body		dto.ClientRequest	true	"Client payload"
//	@Success	201		{object}	dto.ClientDetailResponse
//	@Failure	400		{object}	dto.ValidationErrorResponse
//	@Failure	409		{object}	dto.MessageResponse
//	@Router		/clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
			Errors: map[string]string{"request": "Invalid request body."},
		})
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), toClientInput(req))
	if err != nil {
		h.respondError(c, "", err)
		return
	}

	c.Header("Location", fmt.Sprintf("/clients/%s", client.ID))
	c.JSON(http.StatusCreated, toClientDetailResponse(client))
}

// UpdateClient handles PUT /clients/:id
//
//	@Summary	Update an existing client
//	@Tags		clients
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Client ID"
//	@Param		client	body		dto.ClientRequest	true	"Client payload (full replace)"
//	@Success	200		{object}	dto.ClientDetailResponse
//	@Failure	400		{object}	dto.ValidationErrorResponse
//	@Failure	404		{object}	dto.MessageResponse
//	@Failure	409		{object}	dto.MessageResponse
//	@Router		/clients/{id} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id := c.Param("id")

	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
			Errors: map[string]string{"request": "Invalid request body."},
		})
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), id, toClientInput(req))
	if err != nil {
		h.respondError(c, id, err)
		return
	}

	c.JSON(http.StatusOK, toClientDetailResponse(client))
}

// DeleteClient handles DELETE /clients/:id
//
//	@Summary	Delete a client
//	@Tags		clients
//	@Produce	json
//	@Param		id	path	string	true	"Client ID"
//	@Success	204
//	@Failure	404	{object}	dto.MessageResponse
//	@Router		/clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id := c.Param("id")

	if err := h.clientService.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, id, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// respondError translates service errors into the wire taxonomy: validation,
// not-found, conflict, or internal.
func (h *ClientHandler) respondError(c *gin.Context, id string, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		errs := make(map[string]string, len(validationErr.Fields))
		for _, fe := range validationErr.Fields {
			if _, ok := errs[fe.Field]; !ok {
				errs[fe.Field] = fe.Message
			}
		}
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Errors: errs})
	case errors.Is(err, domain.ErrClientNotFound):
		c.JSON(http.StatusNotFound, dto.MessageResponse{
			Message: fmt.Sprintf("Client with ID %s not found.", id),
		})
	case errors.Is(err, domain.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, dto.MessageResponse{
			Message: "A client with this email already exists.",
		})
	default:
		h.logger.Error("client operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{
			Message: "An unexpected error occurred.",
		})
	}
}

func toClientInput(req dto.ClientRequest) service.ClientInput {
	return service.ClientInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Company:      req.Company,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
		IsActive:     req.IsActive,
	}
}

func toClientDetailResponse(client *domain.Client) dto.ClientDetailResponse {
	return dto.ClientDetailResponse{
		ID:           client.ID,
		FirstName:    client.FirstName,
		LastName:     client.LastName,
		Email:        client.Email,
		Phone:        client.Phone,
		Company:      client.Company,
		AddressLine1: client.AddressLine1,
		AddressLine2: client.AddressLine2,
		City:         client.City,
		State:        client.State,
		PostalCode:   client.PostalCode,
		Country:      client.Country,
		IsActive:     client.IsActive,
		CreatedAt:    client.CreatedAt,
		UpdatedAt:    client.UpdatedAt,
	}
}

func toClientListItem(client *domain.Client) dto.ClientListItem {
	return dto.ClientListItem{
		ID:        client.ID,
		FirstName: client.FirstName,
		LastName:  client.LastName,
		Email:     client.Email,
		Company:   client.Company,
		IsActive:  client.IsActive,
		CreatedAt: client.CreatedAt,
	}
}
