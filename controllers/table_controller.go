package controllers

import (
	"net/http"
	"strconv"

	"restaurant/entity"
	"restaurant/services"
	"restaurant/utils"

	"github.com/gin-gonic/gin"
)

type TableForm struct {
	TableNumber int    `form:"table_number" binding:"required,min=1"`
	Capacity    int    `form:"capacity" binding:"required,min=1"`
	Status      string `form:"status" binding:"required,oneof=available occupied reserved"`
}

type TableController struct {
	Tables *services.TableService
}

func NewTableController(tables *services.TableService) *TableController {
	return &TableController{Tables: tables}
}

// GET /tables
func (ctl *TableController) List(c *gin.Context) {
	tables, err := ctl.Tables.List()
	if err != nil {
		fail(c, err, "/dashboard")
		return
	}
	render(c, http.StatusOK, "tables/list", gin.H{"Title": "Tables", "Tables": tables})
}

// GET /tables/add
func (ctl *TableController) New(c *gin.Context) {
	render(c, http.StatusOK, "tables/form", gin.H{
		"Title":  "Add table",
		"Action": "/tables/add",
		"Form":   TableForm{Capacity: 4, Status: entity.TableAvailable},
	})
}

// POST /tables/add
func (ctl *TableController) Create(c *gin.Context) {
	ctl.save(c, 0, gin.H{"Title": "Add table", "Action": "/tables/add"})
}

// GET /tables/edit/:id
func (ctl *TableController) Edit(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	t, err := ctl.Tables.Get(id)
	if err != nil {
		fail(c, err, "/tables")
		return
	}
	render(c, http.StatusOK, "tables/form", gin.H{
		"Title":  "Edit table",
		"Action": "/tables/edit/" + strconv.FormatUint(uint64(id), 10),
		"Form":   TableForm{TableNumber: t.TableNumber, Capacity: t.Capacity, Status: t.Status},
	})
}

// POST /tables/edit/:id
func (ctl *TableController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ctl.save(c, id, gin.H{"Title": "Edit table", "Action": "/tables/edit/" + strconv.FormatUint(uint64(id), 10)})
}

func (ctl *TableController) save(c *gin.Context, id uint, data gin.H) {
	var form TableForm
	err := c.ShouldBind(&form)
	data["Form"] = form
	if err != nil {
		renderForm(c, "tables/form", data, utils.FieldErrors(err, &form))
		return
	}

	in := services.TableInput{TableNumber: form.TableNumber, Capacity: form.Capacity, Status: form.Status}
	msg := "Table added successfully!"
	if id == 0 {
		_, err = ctl.Tables.Create(in)
	} else {
		_, err = ctl.Tables.Update(id, in)
		msg = "Table updated successfully!"
	}
	if err != nil {
		if errs, ok := formErrors(err); ok {
			renderForm(c, "tables/form", data, errs)
			return
		}
		fail(c, err, "/tables")
		return
	}
	redirectWith(c, "/tables", "success", msg)
}
