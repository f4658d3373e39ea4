package controllers

import (
	"net/http"
	"strconv"
	"time"

	"restaurant/entity"
	"restaurant/services"
	"restaurant/utils"

	"github.com/gin-gonic/gin"
)

type ReservationForm struct {
	TableID         uint   `form:"table_id" binding:"required"`
	CustomerName    string `form:"customer_name" binding:"required,max=100"`
	CustomerEmail   string `form:"customer_email" binding:"omitempty,email,max=120"`
	CustomerPhone   string `form:"customer_phone" binding:"required,max=20"`
	PartySize       int    `form:"party_size" binding:"required,min=1"`
	ReservationDate string `form:"reservation_date" binding:"required,datetime=2006-01-02"`
	ReservationTime string `form:"reservation_time" binding:"required,datetime=15:04"`
	Notes           string `form:"notes"`
	Status          string `form:"status" binding:"omitempty,oneof=confirmed seated completed cancelled"`
}

func (f ReservationForm) input() (services.ReservationInput, map[string]string) {
	at, err := time.ParseInLocation("2006-01-02 15:04", f.ReservationDate+" "+f.ReservationTime, time.Local)
	if err != nil {
		return services.ReservationInput{}, map[string]string{"reservation_date": "Not a valid date or time value."}
	}
	return services.ReservationInput{
		TableID:       f.TableID,
		CustomerName:  f.CustomerName,
		CustomerEmail: f.CustomerEmail,
		CustomerPhone: f.CustomerPhone,
		PartySize:     f.PartySize,
		ReservedAt:    at,
		Status:        f.Status,
		Notes:         f.Notes,
	}, nil
}

type ReservationController struct {
	Reservations *services.ReservationService
	Tables       *services.TableService
}

func NewReservationController(reservations *services.ReservationService, tables *services.TableService) *ReservationController {
	return &ReservationController{Reservations: reservations, Tables: tables}
}

// GET /reservations
func (ctl *ReservationController) List(c *gin.Context) {
	list, err := ctl.Reservations.List()
	if err != nil {
		fail(c, err, "/dashboard")
		return
	}
	render(c, http.StatusOK, "reservations/list", gin.H{"Title": "Reservations", "Reservations": list})
}

// GET /reservations/add
func (ctl *ReservationController) New(c *gin.Context) {
	data, err := ctl.formData("New reservation", "/reservations/add", false)
	if err != nil {
		fail(c, err, "/reservations")
		return
	}
	tomorrow := time.Now().AddDate(0, 0, 1)
	data["Form"] = ReservationForm{
		PartySize:       2,
		ReservationDate: tomorrow.Format("2006-01-02"),
		ReservationTime: "19:00",
	}
	render(c, http.StatusOK, "reservations/form", data)
}

// POST /reservations/add
func (ctl *ReservationController) Create(c *gin.Context) {
	data, err := ctl.formData("New reservation", "/reservations/add", false)
	if err != nil {
		fail(c, err, "/reservations")
		return
	}
	ctl.save(c, 0, data)
}

// GET /reservations/edit/:id
func (ctl *ReservationController) Edit(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res, err := ctl.Reservations.Get(id)
	if err != nil {
		fail(c, err, "/reservations")
		return
	}
	data, err := ctl.formData("Edit reservation", "/reservations/edit/"+strconv.FormatUint(uint64(id), 10), true)
	if err != nil {
		fail(c, err, "/reservations")
		return
	}
	at := res.ReservedAt.Local()
	data["Form"] = ReservationForm{
		TableID:         res.TableID,
		CustomerName:    res.CustomerName,
		CustomerEmail:   res.CustomerEmail,
		CustomerPhone:   res.CustomerPhone,
		PartySize:       res.PartySize,
		ReservationDate: at.Format("2006-01-02"),
		ReservationTime: at.Format("15:04"),
		Notes:           res.Notes,
		Status:          res.Status,
	}
	render(c, http.StatusOK, "reservations/form", data)
}

// POST /reservations/edit/:id
func (ctl *ReservationController) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	data, err := ctl.formData("Edit reservation", "/reservations/edit/"+strconv.FormatUint(uint64(id), 10), true)
	if err != nil {
		fail(c, err, "/reservations")
		return
	}
	ctl.save(c, id, data)
}

func (ctl *ReservationController) save(c *gin.Context, id uint, data gin.H) {
	var form ReservationForm
	err := c.ShouldBind(&form)
	data["Form"] = form
	if err != nil {
		renderForm(c, "reservations/form", data, utils.FieldErrors(err, &form))
		return
	}
	in, errs := form.input()
	if errs != nil {
		renderForm(c, "reservations/form", data, errs)
		return
	}

	msg := "Reservation created successfully!"
	if id == 0 {
		in.Status = entity.ReservationConfirmed
		_, err = ctl.Reservations.Create(in)
	} else {
		_, err = ctl.Reservations.Update(id, in)
		msg = "Reservation updated successfully!"
	}
	if err != nil {
		if errs, ok := formErrors(err); ok {
			renderForm(c, "reservations/form", data, errs)
			return
		}
		fail(c, err, "/reservations")
		return
	}
	redirectWith(c, "/reservations", "success", msg)
}

// POST /reservations/:id/status
func (ctl *ReservationController) SetStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := ctl.Reservations.SetStatus(id, c.PostForm("status")); err != nil {
		fail(c, err, "/reservations")
		return
	}
	redirectWith(c, "/reservations", "success", "Reservation status updated.")
}

func (ctl *ReservationController) formData(title, action string, editing bool) (gin.H, error) {
	tables, err := ctl.Tables.List()
	if err != nil {
		return nil, err
	}
	return gin.H{"Title": title, "Action": action, "Editing": editing, "Tables": tables}, nil
}
