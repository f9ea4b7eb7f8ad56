package itemrepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"farminventory/internal/domain"
	apperror "farminventory/internal/errors"
	"farminventory/internal/pkg/logger"
)

// CollectionName é a única coleção persistida pelo serviço.
const CollectionName = "items"

// codeDocumentValidation é o código do servidor para falha de $jsonSchema/validator.
const codeDocumentValidation = 121

// ItemRepository implementa o acesso à coleção de itens no MongoDB.
// Cada método é uma única chamada ao driver; não há cache nem retry.
type ItemRepository struct {
	coll   *mongo.Collection // nil em modo fallback
	logger logger.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// NewItemRepository cria o repositório. coll pode ser nil quando o bootstrap falhou.
func NewItemRepository(coll *mongo.Collection, log logger.Logger) *ItemRepository {
	return &ItemRepository{
		coll:   coll,
		logger: log,
		tracer: otel.Tracer("farminventory/itemrepo"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *ItemRepository) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("db.system", "mongodb"),
		attribute.String("db.collection", CollectionName),
	)
	return r.tracer.Start(ctx, "itemrepo."+op, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (r *ItemRepository) unavailable() error {
	return apperror.NewUnavailableError("Database unavailable")
}

// FindAll lista todos os itens, mais recentes primeiro.
func (r *ItemRepository) FindAll(ctx context.Context) (items []domain.Item, err error) {
	ctx, span := r.start(ctx, "find_all")
	defer func() { endSpan(span, err) }()

	if r.coll == nil {
		return nil, r.unavailable()
	}
	return r.find(ctx, bson.M{}, "Failed to fetch items")
}

// FindLowStock lista os itens com quantity <= lowStockThreshold.
func (r *ItemRepository) FindLowStock(ctx context.Context) (items []domain.Item, err error) {
	ctx, span := r.start(ctx, "find_low_stock")
	defer func() { endSpan(span, err) }()

	if r.coll == nil {
		return nil, r.unavailable()
	}
	filter := bson.M{"$expr": bson.M{"$lte": bson.A{"$quantity", "$lowStockThreshold"}}}
	return r.find(ctx, filter, "Failed to fetch low stock items")
}

func (r *ItemRepository) find(ctx context.Context, filter interface{}, failMsg string) ([]domain.Item, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperror.NewDBError(failMsg, err)
	}
	defer cursor.Close(ctx)

	items := make([]domain.Item, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, apperror.NewDBError(failMsg, err)
	}
	for i := range items {
		normalize(&items[i])
	}
	return items, nil
}

// FindByID busca um item pelo ObjectID.
func (r *ItemRepository) FindByID(ctx context.Context, id primitive.ObjectID) (item domain.Item, err error) {
	ctx, span := r.start(ctx, "find_by_id", attribute.String("item.id", id.Hex()))
	defer func() { endSpan(span, err) }()

	if r.coll == nil {
		return domain.Item{}, r.unavailable()
	}

	err = r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Item{}, apperror.NewNotFoundError("Item not found")
	}
	if err != nil {
		return domain.Item{}, apperror.NewDBError("Failed to fetch item", err)
	}
	normalize(&item)
	return item, nil
}

// Create insere o item. O ID e os timestamps são atribuídos aqui.
func (r *ItemRepository) Create(ctx context.Context, item domain.Item) (created domain.Item, err error) {
	ctx, span := r.start(ctx, "create", attribute.String("item.name", item.Name))
	defer func() { endSpan(span, err) }()

	if r.coll == nil {
		return domain.Item{}, r.unavailable()
	}

	item.ID = primitive.NewObjectID()
	now := r.now()
	item.CreatedAt = now
	item.UpdatedAt = now
	normalize(&item)

	if _, err = r.coll.InsertOne(ctx, item); err != nil {
		return domain.Item{}, r.writeError("Failed to create item", err)
	}

	r.logger.Debug("Item inserido no MongoDB.", map[string]interface{}{"id": item.ID.Hex()})
	return item, nil
}

// Update faz merge dos campos informados ($set) e renova updatedAt.
// Devolve o documento já atualizado.
func (r *ItemRepository) Update(ctx context.Context, id primitive.ObjectID, patch domain.ItemPatch) (item domain.Item, err error) {
	ctx, span := r.start(ctx, "update", attribute.String("item.id", id.Hex()))
	defer func() { endSpan(span, err) }()

	if r.coll == nil {
		return domain.Item{}, r.unavailable()
	}

	update := bson.D{{Key: "$currentDate", Value: bson.D{{Key: "updatedAt", Value: true}}}}
	if set := setDocument(patch); len(set) > 0 {
		update = append(bson.D{{Key: "$set", Value: set}}, update...)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Item{}, apperror.NewNotFoundError("Item not found")
	}
	if err != nil {
		return domain.Item{}, r.writeError("Failed to update item", err)
	}
	normalize(&item)
	return item, nil
}

// Delete remove o item; 404 quando nada foi removido.
func (r *ItemRepository) Delete(ctx context.Context, id primitive.ObjectID) (err error) {
	ctx, span := r.start(ctx, "delete", attribute.String("item.id", id.Hex()))
	defer func() { endSpan(span, err) }()

	if r.coll == nil {
		return r.unavailable()
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperror.NewDBError("Failed to delete item", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NewNotFoundError("Item not found")
	}
	return nil
}

// EnsureIndexes cria os índices usados pelas listagens. Idempotente.
func (r *ItemRepository) EnsureIndexes(ctx context.Context) error {
	if r.coll == nil {
		return r.unavailable()
	}
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "quantity", Value: 1}, {Key: "lowStockThreshold", Value: 1}}},
	})
	return err
}

// writeError separa falhas de validação do servidor (400) das demais (500).
func (r *ItemRepository) writeError(msg string, err error) error {
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) && serverErr.HasErrorCode(codeDocumentValidation) {
		return apperror.NewValidationError(apperror.CodeInvalidPayload, "Item failed schema validation")
	}
	return apperror.NewDBError(msg, err)
}

func setDocument(p domain.ItemPatch) bson.D {
	set := bson.D{}
	if p.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *p.Name})
	}
	if p.Category != nil {
		set = append(set, bson.E{Key: "category", Value: *p.Category})
	}
	if p.Quantity != nil {
		set = append(set, bson.E{Key: "quantity", Value: *p.Quantity})
	}
	if p.Vehicles != nil {
		vehicles := *p.Vehicles
		if vehicles == nil {
			vehicles = []string{}
		}
		set = append(set, bson.E{Key: "vehicles", Value: vehicles})
	}
	if p.LowStockThreshold != nil {
		set = append(set, bson.E{Key: "lowStockThreshold", Value: *p.LowStockThreshold})
	}
	return set
}

// normalize garante "vehicles": [] no JSON em vez de null.
func normalize(item *domain.Item) {
	if item.Vehicles == nil {
		item.Vehicles = []string{}
	}
}
