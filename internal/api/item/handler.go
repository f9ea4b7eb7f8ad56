package item

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"farminventory/internal/domain"
	apperror "farminventory/internal/errors"
	"farminventory/internal/pkg/logger"
	"farminventory/internal/pkg/response"
)

const maxBodyBytes = 1 << 20

// ItemService define o contrato que o Handler espera da camada de Serviço.
type ItemService interface {
	ListItems(ctx context.Context) ([]domain.Item, error)
	ListLowStock(ctx context.Context) ([]domain.Item, error)
	GetItem(ctx context.Context, id string) (domain.Item, error)
	CreateItem(ctx context.Context, in domain.ItemInput) (domain.Item, error)
	UpdateItem(ctx context.Context, id string, in domain.ItemInput) (domain.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

// Handler agrupa os handlers HTTP de itens.
type Handler struct {
	Service ItemService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ItemService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	if encErr := response.JSON(w, successStatus, data); encErr != nil {
		h.Logger.Error("Falha ao codificar JSON de resposta", encErr)
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (domain.ItemInput, error) {
	var in domain.ItemInput
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	// Corpo vazio vale como {}.
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		return in, apperror.NewValidationError(apperror.CodeInvalidPayload, "Invalid request body", err.Error())
	}
	return in, nil
}

// List lida com GET /api/items.
// @Summary Lista todos os itens
// @Tags items
// @Produce json
// @Success 200 {array} domain.Item
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Failure 503 {object} domain.UnavailableResponse "Banco indisponível"
// @Router /api/items [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListItems(r.Context())
	h.respond(w, r, items, err, http.StatusOK)
}

// LowStock lida com GET /api/items/low-stock.
// @Summary Lista itens com estoque baixo
// @Description Itens cuja quantity é menor ou igual ao lowStockThreshold.
// @Tags items
// @Produce json
// @Success 200 {array} domain.Item
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Failure 503 {object} domain.UnavailableResponse "Banco indisponível"
// @Router /api/items/low-stock [get]
func (h *Handler) LowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListLowStock(r.Context())
	h.respond(w, r, items, err, http.StatusOK)
}

// Get lida com GET /api/items/{id}.
// @Summary Obtém um item por ID
// @Tags items
// @Produce json
// @Param id path string true "ID do item (ObjectID)"
// @Success 200 {object} domain.Item
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Item não encontrado"
// @Failure 503 {object} domain.UnavailableResponse "Banco indisponível"
// @Router /api/items/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.GetItem(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, r, item, err, http.StatusOK)
}

// Create lida com POST /api/items.
// @Summary Cria um item
// @Description quantity assume 0 e lowStockThreshold assume 5 quando omitidos.
// @Tags items
// @Accept json
// @Produce json
// @Param item body domain.ItemInput true "Dados do item"
// @Success 201 {object} domain.Item
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 503 {object} domain.UnavailableResponse "Banco indisponível"
// @Router /api/items [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := h.decode(w, r)
	if err != nil {
		h.respond(w, r, nil, err, http.StatusCreated)
		return
	}
	created, err := h.Service.CreateItem(r.Context(), in)
	h.respond(w, r, created, err, http.StatusCreated)
}

// Update lida com PUT /api/items/{id}. Só os campos enviados são alterados.
// @Summary Atualiza um item
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "ID do item (ObjectID)"
// @Param item body domain.ItemInput true "Campos a alterar"
// @Success 200 {object} domain.Item
// @Failure 400 {object} domain.ErrorResponse "Payload ou ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Item não encontrado"
// @Failure 503 {object} domain.UnavailableResponse "Banco indisponível"
// @Router /api/items/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	in, err := h.decode(w, r)
	if err != nil {
		h.respond(w, r, nil, err, http.StatusOK)
		return
	}
	updated, err := h.Service.UpdateItem(r.Context(), chi.URLParam(r, "id"), in)
	h.respond(w, r, updated, err, http.StatusOK)
}

// Delete lida com DELETE /api/items/{id}.
// @Summary Remove um item
// @Tags items
// @Produce json
// @Param id path string true "ID do item (ObjectID)"
// @Success 200 {object} domain.MessageResponse
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Item não encontrado"
// @Failure 503 {object} domain.UnavailableResponse "Banco indisponível"
// @Router /api/items/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteItem(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, r, domain.MessageResponse{Message: "Item deleted successfully"}, err, http.StatusOK)
}
