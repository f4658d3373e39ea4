package controllers

import (
	"net/http"
	"strconv"

	"restaurant/entity"
	"restaurant/services"
	"restaurant/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type MenuItemForm struct {
	Name        string `form:"name" binding:"required,max=100"`
	Description string `form:"description"`
	Price       string `form:"price" binding:"required,numeric"`
	Category    string `form:"category" binding:"required,oneof=appetizer main dessert beverage"`
	ImageURL    string `form:"image_url" binding:"max=255"`
	Available   bool   `form:"available"`
}

func (f MenuItemForm) input() (services.MenuItemInput, map[string]string) {
	price, err := decimal.NewFromString(f.Price)
	if err != nil {
		return services.MenuItemInput{}, map[string]string{"price": "Not a valid decimal value."}
	}
	return services.MenuItemInput{
		Name:        f.Name,
		Description: f.Description,
		Price:       price,
		Category:    f.Category,
		ImageURL:    f.ImageURL,
		Available:   f.Available,
	}, nil
}

type MenuController struct {
	Menu *services.MenuService
}

func NewMenuController(menu *services.MenuService) *MenuController {
	return &MenuController{Menu: menu}
}

// GET /menu
func (ctl *MenuController) List(c *gin.Context) {
	items, err := ctl.Menu.List()
	if err != nil {
		fail(c, err, "/dashboard")
		return
	}
	render(c, http.StatusOK, "menu/list", gin.H{"Title": "Menu", "Items": items})
}

// GET /menu/add
func (ctl *MenuController) New(c *gin.Context) {
	render(c, http.StatusOK, "menu/form", gin.H{
		"Title":  "Add menu item",
		"Action": "/menu/add",
		"Form":   MenuItemForm{Category: entity.CategoryMain, Available: true},
	})
}

// POST /menu/add
func (ctl *MenuController) Create(c *gin.Context) {
	ctl.save(c, 0, gin.H{"Title": "Add menu item", "Action": "/menu/add"})
}

// GET /menu/edit/:id
func (ctl *MenuController) Edit(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	m, err := ctl.Menu.Get(id)
	if err != nil {
		fail(c, err, "/menu")
		return
	}
	render(c, http.StatusOK, "menu/form", gin.H{
		"Title":  "Edit menu item",
		"Action": "/menu/edit/" + strconv.FormatUint(uint64(id), 10),
		"Form": MenuItemForm{
			Name:        m.Name,
			Description: m.Description,
			Price:       m.Price.StringFixed(2),
			Category:    m.Category,
			ImageURL:    m.ImageURL,
			Available:   m.Available,
		},
	})
}

// POST /menu/edit/:id
func (ctl *MenuController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctl.save(c, id, gin.H{"Title": "Edit menu item", "Action": "/menu/edit/" + strconv.FormatUint(uint64(id), 10)})
}

// save creates when id is zero and updates otherwise.
func (ctl *MenuController) save(c *gin.Context, id uint, data gin.H) {
	var form MenuItemForm
	err := c.ShouldBind(&form)
	data["Form"] = form
	if err != nil {
		renderForm(c, "menu/form", data, utils.FieldErrors(err, &form))
		return
	}
	in, errs := form.input()
	if errs != nil {
		renderForm(c, "menu/form", data, errs)
		return
	}

	msg := "Menu item added successfully!"
	if id == 0 {
		_, err = ctl.Menu.Create(in)
	} else {
		_, err = ctl.Menu.Update(id, in)
		msg = "Menu item updated successfully!"
	}
	if err != nil {
		if errs, ok := formErrors(err); ok {
			renderForm(c, "menu/form", data, errs)
			return
		}
		fail(c, err, "/menu")
		return
	}
	redirectWith(c, "/menu", "success", msg)
}

// POST /menu/delete/:id
func (ctl *MenuController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctl.Menu.Delete(id); err != nil {
		fail(c, err, "/menu")
		return
	}
	redirectWith(c, "/menu", "success", "Menu item deleted successfully!")
}
