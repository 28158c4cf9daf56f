package handler

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/wishkeeper/wishkeeper-go/internal/model"
	"github.com/wishkeeper/wishkeeper-go/internal/service"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var (
	loginPage = template.Must(template.ParseFS(templateFS, "templates/login.html", "templates/layout.html"))
	indexPage = template.Must(template.ParseFS(templateFS, "templates/index.html", "templates/layout.html"))
)

// PageHandler renders the browser pages.
type PageHandler struct {
	wishlists *service.WishlistService
	items     *service.ItemService
	logger    *zap.Logger
}

func NewPageHandler(wishlists *service.WishlistService, items *service.ItemService, logger *zap.Logger) *PageHandler {
	return &PageHandler{wishlists: wishlists, items: items, logger: logger}
}

type indexData struct {
	Title           string
	Wishlists       []model.Wishlist
	ItemsByWishlist map[string][]model.WishlistItem
}

func (h *PageHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	h.render(w, loginPage, struct{ Title string }{Title: "Sign in"})
}

func (h *PageHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	wishlists, err := h.wishlists.List(r.Context())
	if err != nil {
		h.logger.Error("load wishlists for index", zap.Error(err))
		http.Error(w, "Failed to load wishlists", http.StatusInternalServerError)
		return
	}
	items, err := h.items.List(r.Context())
	if err != nil {
		h.logger.Error("load items for index", zap.Error(err))
		http.Error(w, "Failed to load items", http.StatusInternalServerError)
		return
	}

	byWishlist := make(map[string][]model.WishlistItem, len(wishlists))
	for _, item := range items {
		byWishlist[item.WishlistID] = append(byWishlist[item.WishlistID], item)
	}

	h.render(w, indexPage, indexData{Title: "Wishlists", Wishlists: wishlists, ItemsByWishlist: byWishlist})
}

func (h *PageHandler) render(w http.ResponseWriter, t *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, t.Name(), data); err != nil {
		h.logger.Error("render page", zap.String("template", t.Name()), zap.Error(err))
	}
}

// StaticHandler serves the embedded stylesheet and assets under /static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
