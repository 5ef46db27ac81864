package models

import (
	"strings"
	"time"
	"unicode"
)

// ItemStatus is the stocking state of an inventory item as shown to clients.
type ItemStatus string

const (
	StatusInStock      ItemStatus = "In Stock"
	StatusLowStock     ItemStatus = "Low Stock"
	StatusOrdered      ItemStatus = "Ordered"
	StatusDiscontinued ItemStatus = "Discontinued"
)

// Statuses lists every accepted status in display order.
var Statuses = []ItemStatus{StatusInStock, StatusLowStock, StatusOrdered, StatusDiscontinued}

// Valid reports whether s is one of the known statuses.
func (s ItemStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Sticky statuses are never replaced by the automatic low-stock override.
func (s ItemStatus) Sticky() bool {
	return s == StatusOrdered || s == StatusDiscontinued
}

// InventoryItem represents a stock-keeping unit tracked by the service.
type InventoryItem struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Quantity    int        `json:"quantity"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Status      ItemStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ParseStatus maps loose spellings such as "InStock", "in_stock" or
// "low stock" onto the canonical status.
func ParseStatus(s string) (ItemStatus, bool) {
	key := normalizeStatus(s)
	for _, known := range Statuses {
		if normalizeStatus(string(known)) == key {
			return known, true
		}
	}
	return ItemStatus(s), false
}

func normalizeStatus(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-':
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}
