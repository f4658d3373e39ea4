package controllers

import (
	"net/http"
	"strconv"

	"restaurant/services"
	"restaurant/utils"

	"github.com/gin-gonic/gin"
)

type CustomerForm struct {
	Name    string `form:"name" binding:"required,max=100"`
	Email   string `form:"email" binding:"omitempty,email,max=120"`
	Phone   string `form:"phone" binding:"max=20"`
	Address string `form:"address"`
}

func (f CustomerForm) input() services.CustomerInput {
	return services.CustomerInput{Name: f.Name, Email: f.Email, Phone: f.Phone, Address: f.Address}
}

type CustomerController struct {
	Customers *services.CustomerService
}

func NewCustomerController(customers *services.CustomerService) *CustomerController {
	return &CustomerController{Customers: customers}
}

// GET /customers
func (ctl *CustomerController) List(c *gin.Context) {
	customers, err := ctl.Customers.List()
	if err != nil {
		fail(c, err, "/dashboard")
		return
	}
	render(c, http.StatusOK, "customers/list", gin.H{"Title": "Customers", "Customers": customers})
}

// GET /customers/add
func (ctl *CustomerController) New(c *gin.Context) {
	render(c, http.StatusOK, "customers/form", gin.H{
		"Title":  "Add customer",
		"Action": "/customers/add",
		"Form":   CustomerForm{},
	})
}

// POST /customers/add
func (ctl *CustomerController) Create(c *gin.Context) {
	data := gin.H{"Title": "Add customer", "Action": "/customers/add"}
	var form CustomerForm
	err := c.ShouldBind(&form)
	data["Form"] = form
	if err != nil {
		renderForm(c, "customers/form", data, utils.FieldErrors(err, &form))
		return
	}

	if _, err := ctl.Customers.Create(form.input()); err != nil {
		if errs, ok := formErrors(err); ok {
			renderForm(c, "customers/form", data, errs)
			return
		}
		fail(c, err, "/customers")
		return
	}
	redirectWith(c, "/customers", "success", "Customer added successfully!")
}

// GET /customers/edit/:id
func (ctl *CustomerController) Edit(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cust, err := ctl.Customers.Get(id)
	if err != nil {
		fail(c, err, "/customers")
		return
	}
	render(c, http.StatusOK, "customers/form", gin.H{
		"Title":  "Edit customer",
		"Action": "/customers/edit/" + strconv.FormatUint(uint64(id), 10),
		"Form": CustomerForm{
			Name:    cust.Name,
			Email:   cust.EmailOrEmpty(),
			Phone:   cust.Phone,
			Address: cust.Address,
		},
	})
}

// POST /customers/edit/:id
func (ctl *CustomerController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	data := gin.H{"Title": "Edit customer", "Action": "/customers/edit/" + strconv.FormatUint(uint64(id), 10)}
	var form CustomerForm
	err := c.ShouldBind(&form)
	data["Form"] = form
	if err != nil {
		renderForm(c, "customers/form", data, utils.FieldErrors(err, &form))
		return
	}

	if _, err := ctl.Customers.Update(id, form.input()); err != nil {
		if errs, ok := formErrors(err); ok {
			renderForm(c, "customers/form", data, errs)
			return
		}
		fail(c, err, "/customers")
		return
	}
	redirectWith(c, "/customers", "success", "Customer updated successfully!")
}

// POST /customers/delete/:id
func (ctl *CustomerController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctl.Customers.Delete(id); err != nil {
		fail(c, err, "/customers")
		return
	}
	redirectWith(c, "/customers", "success", "Customer deleted successfully!")
}
