// Package pages renders the storefront HTML pages. Each page is an embedded
// html/template file rendered inside layout.html and exposed as a
// templ.Component so handlers render it through ui.Render.
package pages

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/templui/rincon/internal/ctxkeys"
	"github.com/templui/rincon/internal/model"
	"github.com/templui/rincon/internal/service"
	"github.com/templui/rincon/internal/ui"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageNames = []string{
	"home",
	"login",
	"forgot_password",
	"reset_password",
	"dashboard",
	"info_page",
	"not_found",
}

var templates = parseTemplates()

var printer = message.NewPrinter(language.Spanish)

var funcs = template.FuncMap{
	"class":    ui.Class,
	"price":    formatPrice,
	"whatsapp": whatsAppLink,
	"trusted":  func(s string) template.HTML { return template.HTML(s) },
}

type layoutData struct {
	Title        string
	AppName      string
	SupportEmail string
	Nonce        string
	CSRFToken    string
	User         *model.User
	Theme        *model.SiteConfig
	Page         any
}

func parseTemplates() map[string]*template.Template {
	base := template.Must(template.New("layout.html").Funcs(funcs).ParseFS(templatesFS, "templates/layout.html"))

	parsed := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t := template.Must(base.Clone())
		parsed[name] = template.Must(t.ParseFS(templatesFS, "templates/"+name+".html"))
	}
	return parsed
}

func render(name, title string, theme *model.SiteConfig, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if theme == nil {
			theme = &model.SiteConfig{
				PrimaryColor:    model.DefaultPrimaryColor,
				BackgroundColor: model.DefaultBackgroundColor,
				ProductBgColor:  model.DefaultProductBgColor,
			}
		}

		ld := layoutData{
			Title:     title,
			AppName:   "El Rincón de la Sole",
			Nonce:     templ.GetNonce(ctx),
			CSRFToken: ctxkeys.CSRFToken(ctx),
			User:      ctxkeys.User(ctx),
			Theme:     theme,
			Page:      data,
		}
		if cfg := ctxkeys.Config(ctx); cfg != nil {
			ld.AppName = cfg.AppName
			ld.SupportEmail = cfg.SupportEmail
		}
		if ld.Title == "" {
			ld.Title = ld.AppName
		} else {
			ld.Title = ld.Title + " | " + ld.AppName
		}

		return templates[name].ExecuteTemplate(w, "layout.html", ld)
	})
}

type homeData struct {
	Products  []*model.Product
	InfoPages []*service.Page
	WhatsApp  string
}

// Home is the storefront with every product and an order link per product.
func Home(products []*model.Product, theme *model.SiteConfig, infoPages []*service.Page) templ.Component {
	data := homeData{Products: products, InfoPages: infoPages}
	if theme != nil {
		data.WhatsApp = theme.WhatsAppNumber
	}
	return render("home", "", theme, data)
}

func Login() templ.Component {
	return render("login", "Ingresar", nil, nil)
}

func ForgotPassword() templ.Component {
	return render("forgot_password", "Recuperar contraseña", nil, nil)
}

func ResetPassword(token string) templ.Component {
	return render("reset_password", "Nueva contraseña", nil, struct{ Token string }{token})
}

type dashboardData struct {
	Products []*model.Product
	Theme    *model.SiteConfig
}

// Dashboard is the admin shell. app.js drives the product and theme
// forms through the JSON API.
func Dashboard(products []*model.Product, theme *model.SiteConfig) templ.Component {
	return render("dashboard", "Panel", theme, dashboardData{Products: products, Theme: theme})
}

func InfoPage(page *service.Page, theme *model.SiteConfig) templ.Component {
	return render("info_page", page.Title, theme, page)
}

func NotFound() templ.Component {
	return render("not_found", "Página no encontrada", nil, nil)
}

// formatPrice renders a price with Spanish separators, or an invitation to
// ask when the product has none.
func formatPrice(price *float64) string {
	if price == nil {
		return "Consultar precio"
	}
	return printer.Sprintf("$ %.2f", *price)
}

// whatsAppLink builds a wa.me link with a prefilled message about product.
func whatsAppLink(number, product string) string {
	digits := strings.TrimPrefix(strings.TrimSpace(number), "+")
	if digits == "" {
		return ""
	}
	text := "¡Hola! Quiero consultar por este producto"
	if product != "" {
		text = fmt.Sprintf("¡Hola! Quiero consultar por: %s", product)
	}
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(text)
}
