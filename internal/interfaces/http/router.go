package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/inventario-lite/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC       *inventory.UseCase
	JWTSecret    string
	DefaultActor inventory.Actor
}

// Router registra las rutas de la API. Todas pasan por ActorMiddleware, que
// resuelve la identidad para auditoría pero nunca rechaza (auth deshabilitada).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", ActorMiddleware(deps.JWTSecret, deps.DefaultActor))

	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	// /stats antes de /:id para que no lo capture el parámetro
	items.Get("/stats", itemHandler.Stats)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Post("/:id/adjust", itemHandler.Adjust)
	items.Get("/:id/audit", itemHandler.Audit)
}
