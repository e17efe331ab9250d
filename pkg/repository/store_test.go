package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductFilterOrderClause(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      string
	}{
		{"default", "", "", "products.created_at DESC"},
		{"price asc", "price", "asc", "products.price ASC"},
		{"rating desc", "rating", "DESC", "products.rating DESC"},
		{"camel case alias", "createdAt", "ASC", "products.created_at ASC"},
		{"unknown column falls back", "password; DROP TABLE users", "DESC", "products.created_at DESC"},
		{"unknown order falls back", "name", "sideways", "products.name DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ProductFilter{SortBy: tt.sortBy, SortOrder: tt.sortOrder}
			assert.Equal(t, tt.want, f.orderClause())
		})
	}
}
