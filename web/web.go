// Package web embeds the server-rendered page templates.
package web

import (
	"embed"
	"html/template"
	"strings"
	"time"

	"restaurant/entity"

	"github.com/shopspring/decimal"
)

//go:embed templates
var files embed.FS

// Templates parses every page together with the shared header and footer.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.html", "templates/*/*.html")
}

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"qty":   func(d decimal.Decimal) string { return d.String() },
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("2006-01-02")
	},
	"clock": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("15:04")
	},
	"datetime": func(t time.Time) string { return t.Local().Format("2006-01-02 15:04") },
	"capitalize": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"canManage": func(role string) bool {
		return role == entity.RoleAdmin || role == entity.RoleManager
	},
	"canStock": func(role string) bool {
		return role == entity.RoleAdmin || role == entity.RoleManager || role == entity.RoleChef
	},
	"menuCategories":      func() [][2]string { return entity.MenuCategories },
	"tableStatuses":       func() [][2]string { return entity.TableStatuses },
	"reservationStatuses": func() [][2]string { return entity.ReservationStatuses },
	"inventoryUnits":      func() [][2]string { return entity.InventoryUnits },
	"itemStatuses":        func() []string { return entity.ItemStatuses },
}
