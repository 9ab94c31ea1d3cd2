package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/turnera-api/internal/access"
	"github.com/BruksfildServices01/turnera-api/internal/audit"
	"github.com/BruksfildServices01/turnera-api/internal/httperr"
	"github.com/BruksfildServices01/turnera-api/internal/httpresp"
	"github.com/BruksfildServices01/turnera-api/internal/infra/repository"
	"github.com/BruksfildServices01/turnera-api/internal/listing"
	"github.com/BruksfildServices01/turnera-api/internal/middleware"
)

// ======================================================
// CATALOG
// ======================================================

// catalog holds the read and lifecycle endpoints every reference entity
// shares. Entity handlers add create and update on top.
type catalog[T any] struct {
	store    *repository.LifecycleStore[T]
	audit    *audit.Dispatcher
	entity   string
	notFound error
	conflict error
}

// storeError maps storage sentinels to business errors.
func (k *catalog[T]) storeError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return k.notFound
	case errors.Is(err, repository.ErrDuplicate) && k.conflict != nil:
		return k.conflict
	default:
		return err
	}
}

func callerVisibility(c *gin.Context) listing.Visibility {
	return listing.VisibilityFor(access.IsPrivileged(middleware.ClaimsFrom(c)))
}

func (k *catalog[T]) list(c *gin.Context, crit repository.Criteria, vis listing.Visibility) {
	p := listing.FromValues(c.Request.URL.Query())

	items, total, err := k.store.FindMany(c.Request.Context(), crit, p, vis)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Paged(c, items, total, p)
}

func (k *catalog[T]) get(c *gin.Context, key any) {
	v, err := k.store.FindByKey(c.Request.Context(), key, callerVisibility(c))
	if err != nil {
		httperr.Respond(c, k.storeError(err))
		return
	}
	httpresp.OK(c, v)
}

func (k *catalog[T]) softDelete(c *gin.Context, key any, id string) {
	if err := k.store.SoftDelete(c.Request.Context(), key); err != nil {
		httperr.Respond(c, k.storeError(err))
		return
	}
	writeAudit(k.audit, c, k.entity+"_deleted", k.entity, id, nil)
	c.Status(http.StatusNoContent)
}

func (k *catalog[T]) restore(c *gin.Context, key any, id string) {
	ctx := c.Request.Context()
	if err := k.store.Restore(ctx, key); err != nil {
		httperr.Respond(c, k.storeError(err))
		return
	}
	writeAudit(k.audit, c, k.entity+"_restored", k.entity, id, nil)

	v, err := k.store.FindByKey(ctx, key, listing.ActiveOnly)
	if err != nil {
		httperr.Respond(c, k.storeError(err))
		return
	}
	httpresp.OK(c, v)
}

func (k *catalog[T]) hardDelete(c *gin.Context, key any, id string) {
	if err := k.store.Delete(c.Request.Context(), key); err != nil {
		httperr.Respond(c, k.storeError(err))
		return
	}
	writeAudit(k.audit, c, k.entity+"_deleted", k.entity, id, nil)
	c.Status(http.StatusNoContent)
}

// create persists v and answers it reloaded with its associations.
func (k *catalog[T]) create(c *gin.Context, v *T, key func(*T) any, id func(*T) string) {
	ctx := c.Request.Context()
	if err := k.store.Create(ctx, v); err != nil {
		httperr.Respond(c, k.storeError(err))
		return
	}
	writeAudit(k.audit, c, k.entity+"_created", k.entity, id(v), nil)

	created, err := k.store.FindByKey(ctx, key(v), listing.IncludeInactive)
	if err != nil {
		httperr.Respond(c, k.storeError(err))
		return
	}
	httpresp.Created(c, created)
}

func (k *catalog[T]) update(c *gin.Context, v *T, key any, id string) {
	ctx := c.Request.Context()
	if err := k.store.Update(ctx, v); err != nil {
		httperr.Respond(c, k.storeError(err))
		return
	}
	writeAudit(k.audit, c, k.entity+"_updated", k.entity, id, nil)

	updated, err := k.store.FindByKey(ctx, key, listing.IncludeInactive)
	if err != nil {
		httperr.Respond(c, k.storeError(err))
		return
	}
	httpresp.OK(c, updated)
}

// load fetches the row an update applies to.
func (k *catalog[T]) load(c *gin.Context, key any) (*T, bool) {
	v, err := k.store.FindByKey(c.Request.Context(), key, callerVisibility(c))
	if err != nil {
		httperr.Respond(c, k.storeError(err))
		return nil, false
	}
	return v, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.Respond(c, httperr.ErrInvalid("invalid_request", err.Error()))
		return false
	}
	return true
}
