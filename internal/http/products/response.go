package products

import "github.com/okvann/billdesk/internal/catalog"

type productResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	StockQuantity int    `json:"stockQuantity"`
	ImageURL      string `json:"imageUrl"`
}

func toResponse(item catalog.Item) productResponse {
	return productResponse{
		ID:            item.ID,
		Name:          item.Name,
		Price:         item.UnitPrice,
		StockQuantity: item.StockOnHand,
		ImageURL:      item.ImageURL,
	}
}

func toResponseList(items []catalog.Item) []productResponse {
	resp := make([]productResponse, len(items))
	for i, item := range items {
		resp[i] = toResponse(item)
	}

	return resp
}
