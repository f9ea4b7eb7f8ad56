package itemservice

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"farminventory/internal/domain"
	"farminventory/internal/pkg/alert"
	"farminventory/internal/pkg/logger"
)

// ItemRepository define o contrato que o Serviço espera da camada de Persistência.
type ItemRepository interface {
	FindAll(ctx context.Context) ([]domain.Item, error)
	FindLowStock(ctx context.Context) ([]domain.Item, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (domain.Item, error)
	Create(ctx context.Context, item domain.Item) (domain.Item, error)
	Update(ctx context.Context, id primitive.ObjectID, patch domain.ItemPatch) (domain.Item, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Service valida a entrada e delega cada operação a uma única chamada do repositório.
// Erros do repositório já chegam tipados (NotFound, DB, Unavailable) e sobem intactos.
type Service struct {
	repo   ItemRepository
	alerts alert.Publisher
	logger logger.Logger
	now    func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Itens.
func NewService(repo ItemRepository, alerts alert.Publisher, log logger.Logger) *Service {
	if alerts == nil {
		alerts = alert.NopPublisher{}
	}
	return &Service{
		repo:   repo,
		alerts: alerts,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ListItems devolve todos os itens.
func (s *Service) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.repo.FindAll(ctx)
}

// ListLowStock devolve os itens com quantity <= lowStockThreshold.
func (s *Service) ListLowStock(ctx context.Context) ([]domain.Item, error) {
	return s.repo.FindLowStock(ctx)
}

// GetItem busca um item após validar o formato do ID.
func (s *Service) GetItem(ctx context.Context, id string) (domain.Item, error) {
	oid, err := ParseItemID(id)
	if err != nil {
		return domain.Item{}, err
	}
	return s.repo.FindByID(ctx, oid)
}

// CreateItem valida o payload, aplica defaults e persiste.
func (s *Service) CreateItem(ctx context.Context, in domain.ItemInput) (domain.Item, error) {
	item, err := ValidateCreate(in)
	if err != nil {
		s.logger.Debug("Payload de criação rejeitado.", map[string]interface{}{"error": err.Error()})
		return domain.Item{}, err
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return domain.Item{}, err
	}

	s.logger.Info("Item criado.", map[string]interface{}{"id": created.ID.Hex(), "name": created.Name})
	s.notifyIfLow(ctx, created)
	return created, nil
}

// UpdateItem aplica uma atualização parcial (merge) e devolve o item atualizado.
func (s *Service) UpdateItem(ctx context.Context, id string, in domain.ItemInput) (domain.Item, error) {
	oid, err := ParseItemID(id)
	if err != nil {
		return domain.Item{}, err
	}

	patch, err := ValidateUpdate(in)
	if err != nil {
		s.logger.Debug("Payload de atualização rejeitado.", map[string]interface{}{"id": id, "error": err.Error()})
		return domain.Item{}, err
	}

	updated, err := s.repo.Update(ctx, oid, patch)
	if err != nil {
		return domain.Item{}, err
	}

	s.logger.Info("Item atualizado.", map[string]interface{}{"id": id})
	s.notifyIfLow(ctx, updated)
	return updated, nil
}

// DeleteItem remove o item.
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	oid, err := ParseItemID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, oid); err != nil {
		return err
	}
	s.logger.Info("Item removido.", map[string]interface{}{"id": id})
	return nil
}

// notifyIfLow publica o alerta; falha de publicação nunca derruba a requisição.
func (s *Service) notifyIfLow(ctx context.Context, item domain.Item) {
	if !item.IsLowStock() {
		return
	}
	if err := s.alerts.PublishLowStock(ctx, domain.NewLowStockAlert(item, s.now())); err != nil {
		s.logger.Error("Falha ao publicar alerta de estoque baixo.", err, map[string]interface{}{"id": item.ID.Hex()})
	}
}
