package itemservice_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"farminventory/internal/domain"
	apperror "farminventory/internal/errors"
	"farminventory/internal/pkg/logger"
	"farminventory/internal/service/itemservice"
)

// MockItemRepository é uma implementação mock da interface ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindAll(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) FindLowStock(ctx context.Context) ([]domain.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) FindByID(ctx context.Context, id primitive.ObjectID) (domain.Item, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *MockItemRepository) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, id primitive.ObjectID, patch domain.ItemPatch) (domain.Item, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *MockItemRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher registra os alertas publicados.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishLowStock(ctx context.Context, a domain.LowStockAlert) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockPublisher) Close(ctx context.Context) error { return nil }

func strPtr(s string) *string { return &s }

func numPtr(s string) *json.Number {
	n := json.Number(s)
	return &n
}

func withID(item domain.Item) domain.Item {
	item.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	item.CreatedAt, item.UpdatedAt = now, now
	return item
}

// --- Testes para CreateItem ---

func TestCreateItem_Success(t *testing.T) {
	mockRepo := new(MockItemRepository)
	mockPub := new(MockPublisher)
	svc := itemservice.NewService(mockRepo, mockPub, logger.Nop())

	raw := `{"name":"Oil Filter","quantity":15,"vehicles":["Tractor","Truck"],"lowStockThreshold":5}`
	var in domain.ItemInput
	require.NoError(t, json.Unmarshal([]byte(raw), &in))

	expected := domain.Item{Name: "Oil Filter", Quantity: 15, Vehicles: []string{"Tractor", "Truck"}, LowStockThreshold: 5}
	mockRepo.On("Create", mock.Anything, expected).Return(withID(expected), nil)

	item, err := svc.CreateItem(context.Background(), in)

	require.NoError(t, err)
	assert.False(t, item.ID.IsZero())
	assert.Equal(t, []string{"Tractor", "Truck"}, item.Vehicles)
	mockRepo.AssertExpectations(t)
	mockPub.AssertNotCalled(t, "PublishLowStock", mock.Anything, mock.Anything)
}

func TestCreateItem_AppliesDefaults(t *testing.T) {
	mockRepo := new(MockItemRepository)
	pub := new(MockPublisher)
	svc := itemservice.NewService(mockRepo, pub, logger.Nop())

	expected := domain.Item{Name: "Baler Twine", Vehicles: []string{}, LowStockThreshold: 5}
	mockRepo.On("Create", mock.Anything, expected).Return(withID(expected), nil)
	pub.On("PublishLowStock", mock.Anything, mock.Anything).Return(nil)

	item, err := svc.CreateItem(context.Background(), domain.ItemInput{Name: strPtr("Baler Twine")})

	require.NoError(t, err)
	assert.Equal(t, 0, item.Quantity)
	assert.Equal(t, 5, item.LowStockThreshold)
	// 0 <= 5: um item novo sem quantidade já nasce em estoque baixo.
	pub.AssertNumberOfCalls(t, "PublishLowStock", 1)
}

func TestCreateItem_Fail_MissingName(t *testing.T) {
	mockRepo := new(MockItemRepository)
	svc := itemservice.NewService(mockRepo, nil, logger.Nop())

	for _, in := range []domain.ItemInput{{}, {Name: strPtr("")}, {Name: strPtr("   ")}} {
		_, err := svc.CreateItem(context.Background(), in)

		var validation *apperror.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, apperror.CodeNameRequired, validation.Code)
	}
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateItem_Fail_NonIntegerQuantity(t *testing.T) {
	mockRepo := new(MockItemRepository)
	svc := itemservice.NewService(mockRepo, nil, logger.Nop())

	_, err := svc.CreateItem(context.Background(), domain.ItemInput{Name: strPtr("Oil Filter"), Quantity: numPtr("2.5")})

	var validation *apperror.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, apperror.CodeInvalidQuantity, validation.Code)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateItem_Fail_RepoError(t *testing.T) {
	mockRepo := new(MockItemRepository)
	svc := itemservice.NewService(mockRepo, nil, logger.Nop())

	repoErr := apperror.NewDBError("Failed to create item", errors.New("connection refused"))
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(domain.Item{}, repoErr)

	_, err := svc.CreateItem(context.Background(), domain.ItemInput{Name: strPtr("Oil Filter")})

	var internal *apperror.InternalError
	require.ErrorAs(t, err, &internal)
	mockRepo.AssertExpectations(t)
}

func TestCreateItem_AlertFailureDoesNotFailRequest(t *testing.T) {
	mockRepo := new(MockItemRepository)
	pub := new(MockPublisher)
	svc := itemservice.NewService(mockRepo, pub, logger.Nop())

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(withID(domain.Item{Name: "Grease", Quantity: 1, LowStockThreshold: 5}), nil)
	pub.On("PublishLowStock", mock.Anything, mock.MatchedBy(func(a domain.LowStockAlert) bool {
		return a.Name == "Grease" && a.Quantity == 1
	})).Return(errors.New("redis: connection refused"))

	_, err := svc.CreateItem(context.Background(), domain.ItemInput{Name: strPtr("Grease"), Quantity: numPtr("1")})

	assert.NoError(t, err)
	pub.AssertExpectations(t)
}

// --- Testes para GetItem / DeleteItem ---

func TestGetItem_InvalidIDNeverHitsRepository(t *testing.T) {
	mockRepo := new(MockItemRepository)
	svc := itemservice.NewService(mockRepo, nil, logger.Nop())

	_, err := svc.GetItem(context.Background(), "abc-not-an-id")

	var validation *apperror.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Invalid item ID format", validation.Message())
	mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestGetItem_NotFoundPropagates(t *testing.T) {
	mockRepo := new(MockItemRepository)
	svc := itemservice.NewService(mockRepo, nil, logger.Nop())
	id := primitive.NewObjectID()

	mockRepo.On("FindByID", mock.Anything, id).Return(domain.Item{}, apperror.NewNotFoundError("Item not found"))

	_, err := svc.GetItem(context.Background(), id.Hex())

	var notFound *apperror.NotFoundError
	require.ErrorAs(t, err, &notFound)
	mockRepo.AssertExpectations(t)
}

func TestDeleteItem_Success(t *testing.T) {
	mockRepo := new(MockItemRepository)
	svc := itemservice.NewService(mockRepo, nil, logger.Nop())
	id := primitive.NewObjectID()

	mockRepo.On("Delete", mock.Anything, id).Return(nil)

	assert.NoError(t, svc.DeleteItem(context.Background(), id.Hex()))
	mockRepo.AssertExpectations(t)
}

func TestDeleteItem_InvalidID(t *testing.T) {
	mockRepo := new(MockItemRepository)
	svc := itemservice.NewService(mockRepo, nil, logger.Nop())

	err := svc.DeleteItem(context.Background(), "low-stock")

	var validation *apperror.ValidationError
	require.ErrorAs(t, err, &validation)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// --- Testes para UpdateItem ---

func TestUpdateItem_PassesOnlySuppliedFields(t *testing.T) {
	mockRepo := new(MockItemRepository)
	pub := new(MockPublisher)
	svc := itemservice.NewService(mockRepo, pub, logger.Nop())
	id := primitive.NewObjectID()

	mockRepo.On("Update", mock.Anything, id, mock.MatchedBy(func(p domain.ItemPatch) bool {
		return p.Quantity != nil && *p.Quantity == 2 &&
			p.Name == nil && p.Category == nil && p.Vehicles == nil && p.LowStockThreshold == nil
	})).Return(domain.Item{ID: id, Name: "Oil Filter", Quantity: 2, LowStockThreshold: 5}, nil)
	pub.On("PublishLowStock", mock.Anything, mock.Anything).Return(nil)

	item, err := svc.UpdateItem(context.Background(), id.Hex(), domain.ItemInput{Quantity: numPtr("2")})

	require.NoError(t, err)
	assert.Equal(t, "Oil Filter", item.Name)
	mockRepo.AssertExpectations(t)
	pub.AssertNumberOfCalls(t, "PublishLowStock", 1)
}

func TestUpdateItem_Fail_EmptyName(t *testing.T) {
	mockRepo := new(MockItemRepository)
	svc := itemservice.NewService(mockRepo, nil, logger.Nop())

	_, err := svc.UpdateItem(context.Background(), primitive.NewObjectID().Hex(), domain.ItemInput{Name: strPtr("")})

	var validation *apperror.ValidationError
	require.ErrorAs(t, err, &validation)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateItem_NotFound(t *testing.T) {
	mockRepo := new(MockItemRepository)
	svc := itemservice.NewService(mockRepo, nil, logger.Nop())
	id := primitive.NewObjectID()

	mockRepo.On("Update", mock.Anything, id, mock.Anything).Return(domain.Item{}, apperror.NewNotFoundError("Item not found"))

	_, err := svc.UpdateItem(context.Background(), id.Hex(), domain.ItemInput{Category: strPtr("Filters")})

	var notFound *apperror.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

// --- Listagens ---

func TestListLowStock_DelegatesToRepository(t *testing.T) {
	mockRepo := new(MockItemRepository)
	svc := itemservice.NewService(mockRepo, nil, logger.Nop())

	low := []domain.Item{{Name: "Grease", Quantity: 1, LowStockThreshold: 5}}
	mockRepo.On("FindLowStock", mock.Anything).Return(low, nil)

	items, err := svc.ListLowStock(context.Background())

	require.NoError(t, err)
	assert.Equal(t, low, items)
	mockRepo.AssertExpectations(t)
}

func TestListItems_RepoError(t *testing.T) {
	mockRepo := new(MockItemRepository)
	svc := itemservice.NewService(mockRepo, nil, logger.Nop())

	mockRepo.On("FindAll", mock.Anything).Return([]domain.Item(nil), apperror.NewDBError("Failed to fetch items", errors.New("timeout")))

	_, err := svc.ListItems(context.Background())

	var internal *apperror.InternalError
	require.ErrorAs(t, err, &internal)
}
