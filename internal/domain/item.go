package domain

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultLowStockThreshold é aplicado quando o cliente não informa o limite.
const DefaultLowStockThreshold = 5

// Item representa um item do inventário da fazenda (peças, insumos, filtros...).
// @Description Item de inventário persistido na coleção "items".
type Item struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"_id" swaggertype:"string" example:"665f1c2e8b3e4a1d2c3b4a59"`
	Name              string             `bson:"name" json:"name" example:"Oil Filter"`
	Category          string             `bson:"category,omitempty" json:"category,omitempty" example:"Filters"`
	Quantity          int                `bson:"quantity" json:"quantity" example:"15"`
	Vehicles          []string           `bson:"vehicles" json:"vehicles"` // Veículos compatíveis
	LowStockThreshold int                `bson:"lowStockThreshold" json:"lowStockThreshold" example:"5"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsLowStock indica se a quantidade está no limite ou abaixo dele.
func (i Item) IsLowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}

// ItemInput é o payload bruto de criação/atualização, antes da validação.
// Campos ausentes ficam nil; números aceitam JSON number ou string numérica.
type ItemInput struct {
	Name              *string         `json:"name"`
	Category          *string         `json:"category"`
	Quantity          *json.Number    `json:"quantity" swaggertype:"integer"`
	Vehicles          json.RawMessage `json:"vehicles" swaggertype:"array,string"`
	LowStockThreshold *json.Number    `json:"lowStockThreshold" swaggertype:"integer"`
}

// ItemPatch é o resultado validado de uma atualização parcial:
// apenas os campos não-nil são gravados (merge, não substituição).
type ItemPatch struct {
	Name              *string
	Category          *string
	Quantity          *int
	Vehicles          *[]string
	LowStockThreshold *int
}

// LowStockAlert é publicado quando uma escrita deixa o item em estoque baixo.
type LowStockAlert struct {
	ItemID            string    `json:"itemId"`
	Name              string    `json:"name"`
	Quantity          int       `json:"quantity"`
	LowStockThreshold int       `json:"lowStockThreshold"`
	At                time.Time `json:"at"`
}

// NewLowStockAlert monta o alerta a partir do item persistido.
func NewLowStockAlert(item Item, at time.Time) LowStockAlert {
	return LowStockAlert{
		ItemID:            item.ID.Hex(),
		Name:              item.Name,
		Quantity:          item.Quantity,
		LowStockThreshold: item.LowStockThreshold,
		At:                at,
	}
}
