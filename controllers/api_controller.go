package controllers

import (
	"errors"

	"restaurant/pkg/resp"
	"restaurant/services"

	"github.com/gin-gonic/gin"
)

type APIOrderRequest struct {
	TableID    *uint                 `json:"table_id"`
	CustomerID *uint                 `json:"customer_id"`
	UserID     *uint                 `json:"user_id"`
	Items      []APIOrderItemRequest `json:"items"`
}

type APIOrderItemRequest struct {
	MenuItemID uint   `json:"menu_item_id"`
	Quantity   *int   `json:"quantity"`
	Notes      string `json:"notes"`
}

// APIController serves the POS client.
type APIController struct {
	Menu      *services.MenuService
	Tables    *services.TableService
	Customers *services.CustomerService
	Orders    *services.OrderService
}

func NewAPIController(menu *services.MenuService, tables *services.TableService,
	customers *services.CustomerService, orders *services.OrderService) *APIController {
	return &APIController{Menu: menu, Tables: tables, Customers: customers, Orders: orders}
}

// GET /api/menu
func (a *APIController) ListMenu(c *gin.Context) {
	items, err := a.Menu.ListAvailable()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	out := make([]gin.H, 0, len(items))
	for _, m := range items {
		out = append(out, gin.H{
			"id":          m.ID,
			"name":        m.Name,
			"description": m.Description,
			"price":       m.Price.InexactFloat64(),
			"category":    m.Category,
			"image_url":   m.ImageURL,
		})
	}
	resp.OK(c, out)
}

// GET /api/tables
func (a *APIController) ListTables(c *gin.Context) {
	tables, err := a.Tables.List()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	out := make([]gin.H, 0, len(tables))
	for _, t := range tables {
		out = append(out, gin.H{
			"id":           t.ID,
			"table_number": t.TableNumber,
			"capacity":     t.Capacity,
			"status":       t.Status,
		})
	}
	resp.OK(c, out)
}

// GET /api/customers
func (a *APIController) ListCustomers(c *gin.Context) {
	customers, err := a.Customers.List()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	out := make([]gin.H, 0, len(customers))
	for _, cu := range customers {
		out = append(out, gin.H{
			"id":    cu.ID,
			"name":  cu.Name,
			"email": cu.Email,
			"phone": cu.Phone,
		})
	}
	resp.OK(c, out)
}

// POST /api/orders
// Lines naming an unknown or unavailable menu item are dropped, not rejected;
// compare the returned total_amount with what the client expected.
func (a *APIController) CreateOrder(c *gin.Context) {
	var req APIOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "invalid JSON payload")
		return
	}
	if req.TableID == nil {
		resp.BadRequest(c, "table_id is required")
		return
	}
	if len(req.Items) == 0 {
		resp.BadRequest(c, "items are required")
		return
	}

	in := services.APIOrderInput{
		TableID:    *req.TableID,
		CustomerID: req.CustomerID,
		UserID:     req.UserID,
		Items:      make([]services.APIOrderItem, 0, len(req.Items)),
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, services.APIOrderItem{
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
			Notes:      it.Notes,
		})
	}

	order, err := a.Orders.CreateFromAPI(in)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			resp.BadRequest(c, verr.Error())
		case errors.Is(err, services.ErrTableOccupied):
			resp.Conflict(c, "table already has an active order")
		default:
			resp.ServerError(c, err)
		}
		return
	}

	resp.Created(c, gin.H{
		"order_id":     order.ID,
		"total_amount": order.TotalAmount.InexactFloat64(),
		"status":       order.Status,
	})
}
