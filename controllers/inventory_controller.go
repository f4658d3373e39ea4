package controllers

import (
	"net/http"
	"strconv"

	"restaurant/services"
	"restaurant/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type InventoryForm struct {
	Name         string `form:"name" binding:"required,max=100"`
	Quantity     string `form:"quantity" binding:"required,numeric"`
	Unit         string `form:"unit" binding:"required,oneof=kg g l ml piece"`
	ReorderLevel string `form:"reorder_level" binding:"required,numeric"`
	CostPerUnit  string `form:"cost_per_unit" binding:"required,numeric"`
	Supplier     string `form:"supplier" binding:"max=100"`
}

func (f InventoryForm) input() (services.InventoryInput, map[string]string) {
	errs := map[string]string{}
	parse := func(field, v string) decimal.Decimal {
		d, err := decimal.NewFromString(v)
		if err != nil {
			errs[field] = "Not a valid decimal value."
		}
		return d
	}
	in := services.InventoryInput{
		Name:         f.Name,
		Quantity:     parse("quantity", f.Quantity),
		Unit:         f.Unit,
		ReorderLevel: parse("reorder_level", f.ReorderLevel),
		CostPerUnit:  parse("cost_per_unit", f.CostPerUnit),
		Supplier:     f.Supplier,
	}
	if len(errs) > 0 {
		return in, errs
	}
	return in, nil
}

type InventoryController struct {
	Inventory *services.InventoryService
}

func NewInventoryController(inventory *services.InventoryService) *InventoryController {
	return &InventoryController{Inventory: inventory}
}

// GET /inventory?low=1
func (ctl *InventoryController) List(c *gin.Context) {
	low := c.Query("low") == "1" || c.Query("low") == "true"
	items, err := ctl.Inventory.List(low)
	if err != nil {
		fail(c, err, "/dashboard")
		return
	}
	render(c, http.StatusOK, "inventory/list", gin.H{"Title": "Inventory", "Items": items, "LowOnly": low})
}

// GET /inventory/add
func (ctl *InventoryController) New(c *gin.Context) {
	render(c, http.StatusOK, "inventory/form", gin.H{
		"Title":  "Add stock item",
		"Action": "/inventory/add",
		"Form":   InventoryForm{Quantity: "0", Unit: "kg", ReorderLevel: "0", CostPerUnit: "0.00"},
	})
}

// POST /inventory/add
func (ctl *InventoryController) Create(c *gin.Context) {
	ctl.save(c, 0, gin.H{"Title": "Add stock item", "Action": "/inventory/add"})
}

// GET /inventory/edit/:id
func (ctl *InventoryController) Edit(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := ctl.Inventory.Get(id)
	if err != nil {
		fail(c, err, "/inventory")
		return
	}
	render(c, http.StatusOK, "inventory/form", gin.H{
		"Title":  "Edit stock item",
		"Action": "/inventory/edit/" + strconv.FormatUint(uint64(id), 10),
		"Form": InventoryForm{
			Name:         item.Name,
			Quantity:     item.Quantity.String(),
			Unit:         item.Unit,
			ReorderLevel: item.ReorderLevel.String(),
			CostPerUnit:  item.CostPerUnit.StringFixed(2),
			Supplier:     item.Supplier,
		},
	})
}

// POST /inventory/edit/:id
func (ctl *InventoryController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctl.save(c, id, gin.H{"Title": "Edit stock item", "Action": "/inventory/edit/" + strconv.FormatUint(uint64(id), 10)})
}

func (ctl *InventoryController) save(c *gin.Context, id uint, data gin.H) {
	var form InventoryForm
	err := c.ShouldBind(&form)
	data["Form"] = form
	if err != nil {
		renderForm(c, "inventory/form", data, utils.FieldErrors(err, &form))
		return
	}
	in, errs := form.input()
	if errs != nil {
		renderForm(c, "inventory/form", data, errs)
		return
	}

	msg := "Inventory item added successfully!"
	if id == 0 {
		_, err = ctl.Inventory.Create(in)
	} else {
		_, err = ctl.Inventory.Update(id, in)
		msg = "Inventory item updated successfully!"
	}
	if err != nil {
		if errs, ok := formErrors(err); ok {
			renderForm(c, "inventory/form", data, errs)
			return
		}
		fail(c, err, "/inventory")
		return
	}
	redirectWith(c, "/inventory", "success", msg)
}

// POST /inventory/delete/:id
func (ctl *InventoryController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctl.Inventory.Delete(id); err != nil {
		fail(c, err, "/inventory")
		return
	}
	redirectWith(c, "/inventory", "success", "Inventory item deleted successfully!")
}
