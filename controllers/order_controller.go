package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"restaurant/services"
	"restaurant/utils"

	"github.com/gin-gonic/gin"
)

type OrderForm struct {
	TableID    uint `form:"table_id" binding:"required"`
	CustomerID uint `form:"customer_id"`
}

type OrderItemForm struct {
	MenuItemID uint   `form:"menu_item_id" binding:"required"`
	Quantity   int    `form:"quantity" binding:"required,min=1"`
	Notes      string `form:"notes"`
}

type OrderController struct {
	Orders    *services.OrderService
	Tables    *services.TableService
	Customers *services.CustomerService
	Menu      *services.MenuService
}

func NewOrderController(orders *services.OrderService, tables *services.TableService,
	customers *services.CustomerService, menu *services.MenuService) *OrderController {
	return &OrderController{Orders: orders, Tables: tables, Customers: customers, Menu: menu}
}

func orderPath(id uint) string {
	return fmt.Sprintf("/orders/%d/items", id)
}

// GET /orders
func (ctl *OrderController) List(c *gin.Context) {
	orders, err := ctl.Orders.List()
	if err != nil {
		fail(c, err, "/dashboard")
		return
	}
	render(c, http.StatusOK, "orders/list", gin.H{"Title": "Orders", "Orders": orders})
}

// GET /orders/add
func (ctl *OrderController) New(c *gin.Context) {
	data, err := ctl.formData()
	if err != nil {
		fail(c, err, "/orders")
		return
	}
	data["Form"] = OrderForm{}
	render(c, http.StatusOK, "orders/form", data)
}

// POST /orders/add
func (ctl *OrderController) Create(c *gin.Context) {
	data, err := ctl.formData()
	if err != nil {
		fail(c, err, "/orders")
		return
	}
	var form OrderForm
	err = c.ShouldBind(&form)
	data["Form"] = form
	if err != nil {
		renderForm(c, "orders/form", data, utils.FieldErrors(err, &form))
		return
	}

	in := services.CreateOrderInput{TableID: form.TableID, UserID: utils.CurrentUserID(c)}
	if form.CustomerID != 0 {
		cid := form.CustomerID
		in.CustomerID = &cid
	}
	order, err := ctl.Orders.Create(in)
	if err != nil {
		if errors.Is(err, services.ErrTableOccupied) {
			renderForm(c, "orders/form", data, map[string]string{"table_id": "That table already has an active order."})
			return
		}
		if errs, ok := formErrors(err); ok {
			renderForm(c, "orders/form", data, errs)
			return
		}
		fail(c, err, "/orders")
		return
	}
	redirectWith(c, orderPath(order.ID), "success", "Order created successfully!")
}

func (ctl *OrderController) formData() (gin.H, error) {
	tables, err := ctl.Tables.ListSeatable()
	if err != nil {
		return nil, err
	}
	customers, err := ctl.Customers.List()
	if err != nil {
		return nil, err
	}
	return gin.H{"Title": "New order", "Tables": tables, "Customers": customers}, nil
}

// GET /orders/:id/items
func (ctl *OrderController) Items(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctl.renderItems(c, id, http.StatusOK, OrderItemForm{Quantity: 1}, nil)
}

func (ctl *OrderController) renderItems(c *gin.Context, id uint, status int, form OrderItemForm, errs map[string]string) {
	order, err := ctl.Orders.Detail(id)
	if err != nil {
		fail(c, err, "/orders")
		return
	}
	menu, err := ctl.Menu.ListAvailable()
	if err != nil {
		fail(c, err, "/orders")
		return
	}
	if errs == nil {
		errs = map[string]string{}
	}
	render(c, status, "orders/items", gin.H{
		"Title":     fmt.Sprintf("Order #%d", order.ID),
		"Order":     order,
		"MenuItems": menu,
		"Form":      form,
		"Errors":    errs,
	})
}

// POST /orders/:id/items
func (ctl *OrderController) AddItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var form OrderItemForm
	if err := c.ShouldBind(&form); err != nil {
		ctl.renderItems(c, id, http.StatusUnprocessableEntity, form, utils.FieldErrors(err, &form))
		return
	}

	_, err := ctl.Orders.AddItem(id, services.OrderItemInput{
		MenuItemID: form.MenuItemID,
		Quantity:   form.Quantity,
		Notes:      form.Notes,
	})
	if err != nil {
		if errs, ok := formErrors(err); ok {
			ctl.renderItems(c, id, http.StatusUnprocessableEntity, form, errs)
			return
		}
		fail(c, err, orderPath(id))
		return
	}
	redirectWith(c, orderPath(id), "success", "Item added to order!")
}

// POST /orders/:id/items/:item_id/delete
func (ctl *OrderController) RemoveItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "item_id")
	if !ok {
		return
	}
	if err := ctl.Orders.RemoveItem(id, itemID); err != nil {
		fail(c, err, orderPath(id))
		return
	}
	redirectWith(c, orderPath(id), "success", "Item removed from order!")
}

// POST /orders/:id/items/:item_id/status
func (ctl *OrderController) ItemStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "item_id")
	if !ok {
		return
	}
	if err := ctl.Orders.SetItemStatus(id, itemID, c.PostForm("status")); err != nil {
		fail(c, err, orderPath(id))
		return
	}
	redirectWith(c, orderPath(id), "success", "Item status updated.")
}

// ----- Status -----

// POST /orders/:id/prepare
func (ctl *OrderController) Prepare(c *gin.Context) {
	ctl.step(c, ctl.Orders.Prepare, "Order is being prepared.")
}

// POST /orders/:id/serve
func (ctl *OrderController) Serve(c *gin.Context) {
	ctl.step(c, ctl.Orders.Serve, "Order marked as served.")
}

// POST /orders/:id/complete
func (ctl *OrderController) Complete(c *gin.Context) {
	ctl.step(c, ctl.Orders.Complete, "Order completed successfully!")
}

// POST /orders/:id/cancel
func (ctl *OrderController) Cancel(c *gin.Context) {
	ctl.step(c, ctl.Orders.Cancel, "Order cancelled.")
}

func (ctl *OrderController) step(c *gin.Context, fn func(uint) error, msg string) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := fn(id); err != nil {
		fail(c, err, orderPath(id))
		return
	}
	redirectWith(c, orderPath(id), "success", msg)
}

// POST /orders/:id/recalculate
func (ctl *OrderController) Recalculate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	total, err := ctl.Orders.Recalculate(id)
	if err != nil {
		fail(c, err, orderPath(id))
		return
	}
	redirectWith(c, orderPath(id), "info", "Total recalculated: $"+total.StringFixed(2))
}
