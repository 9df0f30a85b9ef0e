package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/okvann/billdesk/internal/catalog"
)

func TestItem_Sellable(t *testing.T) {
	assert.True(t, catalog.Item{StockOnHand: 1}.Sellable())
	assert.False(t, catalog.Item{StockOnHand: 0}.Sellable())
	assert.False(t, catalog.Item{StockOnHand: -1}.Sellable())
}
