package handlers

import (
	"redheart/internal/config"
	"redheart/internal/events"
	"redheart/internal/repos"
	"redheart/internal/services"
	"redheart/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
)

// Backend is every REST call the console makes; *backend.Client satisfies it.
type Backend interface {
	services.DashboardBackend
	services.OrderBackend
	services.ProductBackend
	services.AddOnBackend
	services.PageBackend
	services.QuestionBackend
}

type Deps struct {
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Orders    *OrderHandler
	Products  *ProductHandler
	AddOns    *AddOnHandler
	Images    *ImageHandler
	Pages     *PageHandler
	Questions *QuestionHandler
}

func NewDeps(cfg config.Config, db *sqlx.DB, api Backend, store storage.ObjectStore, progress *storage.ProgressTracker, pub events.Publisher, auth *services.AuthService) (*Deps, error) {
	policy, err := services.ParsePolicy(cfg.OrderUpdatePolicy)
	if err != nil {
		return nil, err
	}
	if pub == nil {
		pub = events.Nop{}
	}
	slotRepo := repos.NewImageSlotRepo(db)
	exportRepo := repos.NewExportRepo(db)

	return &Deps{
		Auth:      &AuthHandler{Auth: auth, CookieSecure: cfg.CookieSecure},
		Dashboard: &DashboardHandler{Dashboard: services.NewDashboardService(api)},
		Orders:    &OrderHandler{Orders: services.NewOrderService(api, services.NewBusyID(policy), pub)},
		Products:  &ProductHandler{Products: services.NewProductService(api, cfg.ProductsPageSize, pub)},
		AddOns:    &AddOnHandler{AddOns: services.NewAddOnService(api, pub)},
		Images:    &ImageHandler{Images: services.NewImageService(store, progress, slotRepo, exportRepo, pub)},
		Pages:     &PageHandler{Pages: services.NewPageService(api, pub)},
		Questions: &QuestionHandler{Questions: services.NewQuestionService(api, pub)},
	}, nil
}

// Routes is the console's route table. loginLimit throttles POST /login.
func (d *Deps) Routes(loginLimit fiber.Handler) []Route {
	var loginMW []fiber.Handler
	if loginLimit != nil {
		loginMW = []fiber.Handler{loginLimit}
	}
	return []Route{
		{Method: fiber.MethodGet, Path: "/login", Handler: d.Auth.LoginForm},
		{Method: fiber.MethodPost, Path: "/login", Middleware: loginMW, Handler: d.Auth.Login},
		{Method: fiber.MethodPost, Path: "/logout", Handler: d.Auth.Logout},
		{Method: fiber.MethodGet, Path: "/", Protected: true, Handler: func(c *fiber.Ctx) error { return c.Redirect("/admin") }},

		{Method: fiber.MethodGet, Path: "/admin", Protected: true, Title: "Dashboard", Handler: d.Dashboard.Show},

		{Method: fiber.MethodGet, Path: "/admin/orders", Protected: true, Title: "Orders", Handler: d.Orders.List},
		{Method: fiber.MethodPost, Path: "/admin/orders/:id/status", Protected: true, Title: "Orders", Handler: d.Orders.UpdateStatus},

		{Method: fiber.MethodGet, Path: "/admin/products", Protected: true, Title: "Products", Handler: d.Products.Browse},
		{Method: fiber.MethodPost, Path: "/admin/products/:id/delete", Protected: true, Title: "Products", Handler: d.Products.Delete},
		{Method: fiber.MethodGet, Path: "/admin/products/import", Protected: true, Title: "Add Products", Handler: d.Products.ImportForm},
		{Method: fiber.MethodPost, Path: "/admin/products/import", Protected: true, Title: "Add Products", Handler: d.Products.Import},
		{Method: fiber.MethodGet, Path: "/admin/products/update", Protected: true, Title: "Update Products", Handler: d.Products.UpdateForm},
		{Method: fiber.MethodPost, Path: "/admin/products/update", Protected: true, Title: "Update Products", Handler: d.Products.Update},

		{Method: fiber.MethodGet, Path: "/admin/addons", Protected: true, Title: "AddOns", Handler: d.AddOns.List},
		{Method: fiber.MethodGet, Path: "/admin/addons/new", Protected: true, Title: "AddOns", Handler: d.AddOns.New},
		{Method: fiber.MethodGet, Path: "/admin/addons/:id/edit", Protected: true, Title: "AddOns", Handler: d.AddOns.Edit},
		{Method: fiber.MethodPost, Path: "/admin/addons", Protected: true, Title: "AddOns", Handler: d.AddOns.Create},
		{Method: fiber.MethodPost, Path: "/admin/addons/:id/delete", Protected: true, Title: "AddOns", Handler: d.AddOns.Delete},
		{Method: fiber.MethodPost, Path: "/admin/addons/:id", Protected: true, Title: "AddOns", Handler: d.AddOns.Update},

		{Method: fiber.MethodGet, Path: "/admin/images", Protected: true, Title: "Image Upload", Handler: d.Images.Page},
		{Method: fiber.MethodPost, Path: "/admin/images/upload", Protected: true, Title: "Image Upload", Handler: d.Images.Upload},
		{Method: fiber.MethodGet, Path: "/admin/images/progress/:id", Protected: true, Middleware: []fiber.Handler{ProgressLimiter()}, Handler: d.Images.Progress},
		{Method: fiber.MethodPost, Path: "/admin/images/reset", Protected: true, Handler: d.Images.Reset},
		{Method: fiber.MethodGet, Path: "/admin/images/export", Protected: true, Title: "Image Upload", Handler: d.Images.Export},

		{Method: fiber.MethodGet, Path: "/admin/pages", Protected: true, Title: "Page Content", Handler: d.Pages.Show},
		{Method: fiber.MethodPost, Path: "/admin/pages", Protected: true, Title: "Page Content", Handler: d.Pages.Save},

		{Method: fiber.MethodGet, Path: "/admin/questions", Protected: true, Title: "Questions", Handler: d.Questions.Show},
		{Method: fiber.MethodPost, Path: "/admin/questions", Protected: true, Title: "Questions", Handler: d.Questions.Create},
		{Method: fiber.MethodPost, Path: "/admin/questions/:id/delete", Protected: true, Title: "Questions", Handler: d.Questions.Delete},
	}
}
