package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/inventario-lite/internal/application/dto"
	"github.com/tu-usuario/inventario-lite/internal/domain"
	"github.com/tu-usuario/inventario-lite/internal/domain/entity"
	"github.com/tu-usuario/inventario-lite/internal/domain/repository"
)

// Límites de paginación y ordenamiento por defecto de los listados.
const (
	defaultItemLimit  = 10
	defaultAuditLimit = 20
	maxPageLimit      = 100
	defaultSortBy     = "name"
	defaultSortOrder  = "asc"
)

// UseCase es el único componente que acopla una mutación con su registro de
// auditoría: cada operación de escritura corre dentro de una transacción que
// cubre el item y la entrada de auditoría, de modo que o se confirman ambos
// o ninguno.
type UseCase struct {
	txRunner  TxRunner
	itemRepo  repository.ItemRepository
	auditRepo repository.AuditRepository
}

// NewUseCase construye el caso de uso. itemRepo y auditRepo se usan para
// lecturas fuera de transacción; las escrituras pasan por txRunner.
func NewUseCase(txRunner TxRunner, itemRepo repository.ItemRepository, auditRepo repository.AuditRepository) *UseCase {
	return &UseCase{txRunner: txRunner, itemRepo: itemRepo, auditRepo: auditRepo}
}

// CreateItem valida y crea un artículo, con su entrada item_created en la misma
// transacción. Si la validación falla no se escribe nada.
func (uc *UseCase) CreateItem(ctx context.Context, in dto.CreateItemRequest, actor Actor) (*dto.ItemResponse, error) {
	if in.Quantity == nil || in.ReorderThreshold == nil || in.CostPrice == nil {
		return nil, fmt.Errorf("%w: quantity, reorderThreshold y costPrice son requeridos", domain.ErrInvalidInput)
	}
	now := time.Now()
	item := &entity.Item{
		ID:               uuid.New().String(),
		Name:             in.Name,
		Category:         in.Category,
		Unit:             in.Unit,
		Quantity:         *in.Quantity,
		ReorderThreshold: *in.ReorderThreshold,
		CostPrice:        *in.CostPrice,
		CreatedBy:        actor.UserID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}

	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository, audit repository.AuditRepository) error {
		if err := items.Create(item); err != nil {
			return err
		}
		return audit.Create(&entity.AuditEntry{
			ItemID:    item.ID,
			ItemName:  item.Name,
			Action:    entity.ActionItemCreated,
			UserID:    actor.UserID,
			UserEmail: actor.Email,
			Timestamp: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetItem obtiene un artículo por ID.
func (uc *UseCase) GetItem(ctx context.Context, id string) (*dto.ItemResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// UpdateItem aplica una actualización parcial: solo los campos presentes cambian.
// El resultado combinado se revalida antes de persistir. Quantity no se toca aquí
// salvo que venga explícito en el request; los ajustes con motivo van por AdjustQuantity.
func (uc *UseCase) UpdateItem(ctx context.Context, id string, in dto.UpdateItemRequest, actor Actor) (*dto.ItemResponse, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	var updated *entity.Item
	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository, audit repository.AuditRepository) error {
		item, err := items.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			item.Name = *in.Name
		}
		if in.Category != nil {
			item.Category = *in.Category
		}
		if in.Unit != nil {
			item.Unit = *in.Unit
		}
		if in.Quantity != nil {
			item.Quantity = *in.Quantity
		}
		if in.ReorderThreshold != nil {
			item.ReorderThreshold = *in.ReorderThreshold
		}
		if in.CostPrice != nil {
			item.CostPrice = *in.CostPrice
		}
		if err := validateItem(item); err != nil {
			return err
		}
		item.UpdatedAt = time.Now()
		if err := items.Update(item); err != nil {
			return err
		}
		if err := audit.Create(&entity.AuditEntry{
			ItemID:    item.ID,
			ItemName:  item.Name,
			Action:    entity.ActionItemUpdated,
			UserID:    actor.UserID,
			UserEmail: actor.Email,
			Timestamp: item.UpdatedAt,
		}); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(updated), nil
}

// DeleteItem borra un artículo (hard delete). Se lee primero para capturar el
// nombre en la entrada item_deleted; el historial de auditoría sobrevive al borrado.
func (uc *UseCase) DeleteItem(ctx context.Context, id string, actor Actor) error {
	if err := validateID(id); err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(items repository.ItemRepository, audit repository.AuditRepository) error {
		item, err := items.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if err := items.Delete(id); err != nil {
			return err
		}
		return audit.Create(&entity.AuditEntry{
			ItemID:    item.ID,
			ItemName:  item.Name,
			Action:    entity.ActionItemDeleted,
			UserID:    actor.UserID,
			UserEmail: actor.Email,
			Timestamp: time.Now(),
		})
	})
}

// AdjustmentResult resultado de un ajuste exitoso.
type AdjustmentResult struct {
	Item             *dto.ItemResponse
	Delta            int64
	PreviousQuantity int64
	NewQuantity      int64
	Reason           string
}

// AdjustQuantity aplica un delta con signo a la cantidad de un artículo.
// La fila se bloquea (SELECT FOR UPDATE) para serializar el read-modify-write
// entre ajustes concurrentes: el segundo ajuste espera el lock y re-verifica el
// piso contra la cantidad ya confirmada. Si newQuantity < 0 la transacción se
// revierte completa: ni mutación ni entrada de auditoría.
func (uc *UseCase) AdjustQuantity(ctx context.Context, id string, delta int64, reason string, actor Actor) (*AdjustmentResult, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	var result *AdjustmentResult
	err := uc.txRunner.Run(ctx, func(items repository.ItemRepository, audit repository.AuditRepository) error {
		item, err := items.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		previous := item.Quantity
		next := previous + delta
		if next < 0 {
			return domain.ErrInsufficientQuantity
		}
		now := time.Now()
		if err := items.UpdateQuantity(item.ID, next, now); err != nil {
			return err
		}
		item.Quantity = next
		item.UpdatedAt = now
		if err := audit.Create(&entity.AuditEntry{
			ItemID:           item.ID,
			ItemName:         item.Name,
			Action:           entity.ActionQuantityAdjustment,
			Delta:            &delta,
			PreviousQuantity: &previous,
			NewQuantity:      &next,
			Reason:           reason,
			UserID:           actor.UserID,
			UserEmail:        actor.Email,
			Timestamp:        now,
		}); err != nil {
			return err
		}
		result = &AdjustmentResult{
			Item:             toItemResponse(item),
			Delta:            delta,
			PreviousQuantity: previous,
			NewQuantity:      next,
			Reason:           reason,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListItems lista artículos con búsqueda, filtro por categoría, ordenamiento y
// paginación 1-indexada. Una página fuera de rango devuelve lista vacía, no error.
func (uc *UseCase) ListItems(ctx context.Context, q dto.ListItemsQuery) (*dto.ListItemsResponse, error) {
	page, limit := normalizePage(q.Page, q.Limit, defaultItemLimit)
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = defaultSortBy
	}
	sortOrder := q.SortOrder
	if sortOrder != "desc" {
		sortOrder = defaultSortOrder
	}

	list, total, err := uc.itemRepo.List(repository.ItemFilter{
		Search:    q.Search,
		Category:  q.Category,
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Limit:     limit,
		Offset:    (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	categories, err := uc.itemRepo.DistinctCategories()
	if err != nil {
		return nil, err
	}

	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ListItemsResponse{
		Items:      items,
		Pagination: dto.NewPagination(page, limit, total),
		Categories: categories,
	}, nil
}

// ListAudit devuelve el historial de un artículo, más reciente primero.
// Funciona también para artículos ya borrados (referencia débil).
func (uc *UseCase) ListAudit(ctx context.Context, itemID string, page, limit int) (*dto.AuditListResponse, error) {
	if err := validateID(itemID); err != nil {
		return nil, err
	}
	page, limit = normalizePage(page, limit, defaultAuditLimit)
	entries, total, err := uc.auditRepo.ListByItem(itemID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	logs := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		logs = append(logs, toAuditResponse(e))
	}
	return &dto.AuditListResponse{
		AuditLogs:  logs,
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// Stats agregados simples del inventario (conteos y valor total).
func (uc *UseCase) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	stats, err := uc.itemRepo.Stats()
	if err != nil {
		return nil, err
	}
	return &dto.StatsResponse{
		TotalItems:    stats.TotalItems,
		LowStockItems: stats.LowStockItems,
		TotalValue:    stats.TotalValue,
	}, nil
}

// validateItem revisa las invariantes de un artículo completo (también tras un
// merge parcial): nombre no vacío y <=100, categoría y unidad no vacías, y
// ningún numérico negativo.
func validateItem(item *entity.Item) error {
	if item.Name == "" {
		return fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if len(item.Name) > 100 {
		return fmt.Errorf("%w: name supera 100 caracteres", domain.ErrInvalidInput)
	}
	if item.Category == "" {
		return fmt.Errorf("%w: category es requerida", domain.ErrInvalidInput)
	}
	if item.Unit == "" {
		return fmt.Errorf("%w: unit es requerida", domain.ErrInvalidInput)
	}
	if item.Quantity < 0 {
		return fmt.Errorf("%w: quantity no puede ser negativa", domain.ErrInvalidInput)
	}
	if item.ReorderThreshold < 0 {
		return fmt.Errorf("%w: reorderThreshold no puede ser negativo", domain.ErrInvalidInput)
	}
	if item.CostPrice.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: costPrice no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}

// validateID se verifica antes de cualquier lookup: un identificador malformado
// responde 400, nunca 404 ni 500.
func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidID
	}
	return nil
}

func normalizePage(page, limit, defLimit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func toItemResponse(item *entity.Item) *dto.ItemResponse {
	if item == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:               item.ID,
		Name:             item.Name,
		Category:         item.Category,
		Unit:             item.Unit,
		Quantity:         item.Quantity,
		ReorderThreshold: item.ReorderThreshold,
		CostPrice:        item.CostPrice,
		LowStock:         item.LowStock(),
		CreatedBy:        item.CreatedBy,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}
}

func toAuditResponse(e *entity.AuditEntry) dto.AuditEntryResponse {
	return dto.AuditEntryResponse{
		ID:               e.ID,
		ItemID:           e.ItemID,
		ItemName:         e.ItemName,
		Action:           e.Action,
		Delta:            e.Delta,
		PreviousQuantity: e.PreviousQuantity,
		NewQuantity:      e.NewQuantity,
		Reason:           e.Reason,
		UserID:           e.UserID,
		UserEmail:        e.UserEmail,
		Timestamp:        e.Timestamp,
	}
}
