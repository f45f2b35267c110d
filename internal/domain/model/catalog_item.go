package model

import (
	"time"
)

// CatalogKind is one of the storefront's product categories. Each kind maps
// to a tab in the admin dashboard.
type CatalogKind string

const (
	KindProduct CatalogKind = "product"
	KindAccount CatalogKind = "account"
	KindGem     CatalogKind = "gem"
	KindDiamond CatalogKind = "diamond"
	KindBot     CatalogKind = "bot"
	KindOffer   CatalogKind = "offer"
)

var catalogKinds = map[CatalogKind]struct{}{
	KindProduct: {}, KindAccount: {}, KindGem: {},
	KindDiamond: {}, KindBot: {}, KindOffer: {},
}

// ValidCatalogKind reports whether k names a known category.
func ValidCatalogKind(k CatalogKind) bool {
	_, ok := catalogKinds[k]
	return ok
}

// CatalogItem is one sellable entry. Kind-specific fields (bot features,
// account level, offer discount, ...) live in Attrs.
type CatalogItem struct {
	ID          string         `json:"id"`
	Kind        CatalogKind    `json:"kind"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	PriceCents  int64          `json:"price_cents"`
	Quantity    int            `json:"quantity"`
	ImageURL    string         `json:"image_url,omitempty"`
	Attrs       map[string]any `json:"attrs,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
