package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/athena/internal/app/models/dto"
	"github.com/yigit/athena/internal/middleware"
	"github.com/yigit/athena/internal/pkg/apperrors"
)

// pathID parses a uuid path parameter, answering 400 when it is malformed
func pathID(ctx *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(param))
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewInvalidArgumentError(fmt.Sprintf("Invalid %s format", param)))
		return uuid.Nil, false
	}
	return id, true
}

// resolve loads the entity named by a path parameter, answering 404 when
// it does not exist.
func resolve[T any](ctx *gin.Context, get func(context.Context, uuid.UUID) (*T, error), param, what string) (*T, bool) {
	id, ok := pathID(ctx, param)
	if !ok {
		return nil, false
	}

	item, err := get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	if item == nil {
		middleware.HandleAPIError(ctx, apperrors.NewNotFoundError(fmt.Sprintf("%s %s not found", what, id)))
		return nil, false
	}
	return item, true
}

// matchID checks the body id of an edit against the path id. A body without
// an id takes the path id.
func matchID(ctx *gin.Context, id uuid.UUID, bodyID *uuid.UUID) bool {
	if *bodyID == uuid.Nil {
		*bodyID = id
		return true
	}
	if *bodyID != id {
		middleware.HandleAPIError(ctx, apperrors.NewInvalidArgumentError(
			fmt.Sprintf("Tried to edit %s but got a model for %s", id, *bodyID)))
		return false
	}
	return true
}

func respond(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, dto.NewAPIResponse(data))
}

// listFor answers with the items related to the entity named by param
func listFor[O, T any](ctx *gin.Context, get func(context.Context, uuid.UUID) (*O, error), param, what string, list func(context.Context, *O) ([]*T, error)) {
	owner, ok := resolve(ctx, get, param, what)
	if !ok {
		return
	}

	items, err := list(ctx.Request.Context(), owner)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, items)
}

// relationEnd names one side of a relationship route
type relationEnd[T any] struct {
	get   func(context.Context, uuid.UUID) (*T, error)
	param string
	what  string
}

// relate resolves both ends of a relationship route and applies op
func relate[O, M any](ctx *gin.Context, owner relationEnd[O], member relationEnd[M], op func(context.Context, *O, *M) error) {
	o, ok := resolve(ctx, owner.get, owner.param, owner.what)
	if !ok {
		return
	}
	m, ok := resolve(ctx, member.get, member.param, member.what)
	if !ok {
		return
	}

	if err := op(ctx.Request.Context(), o, m); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// entityStore is the CRUD part every aggregate contract shares
type entityStore[T any] interface {
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	Add(ctx context.Context, item *T) error
	Edit(ctx context.Context, item *T) error
	Delete(ctx context.Context, item *T) error
}

// createEntity binds the body, stores it and answers with the stored view
func createEntity[T any](ctx *gin.Context, repo entityStore[T], idOf func(*T) *uuid.UUID) {
	item := new(T)
	if !middleware.BindJSON(ctx, item) {
		return
	}

	if err := repo.Add(ctx.Request.Context(), item); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	stored, err := repo.Get(ctx.Request.Context(), *idOf(item))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if stored == nil {
		stored = item
	}
	respond(ctx, http.StatusCreated, stored)
}

func getEntity[T any](ctx *gin.Context, repo entityStore[T], what string) {
	item, ok := resolve(ctx, repo.Get, "id", what)
	if !ok {
		return
	}
	respond(ctx, http.StatusOK, item)
}

// updateEntity replaces an existing entity with the body
func updateEntity[T any](ctx *gin.Context, repo entityStore[T], idOf func(*T) *uuid.UUID, what string) {
	existing, ok := resolve(ctx, repo.Get, "id", what)
	if !ok {
		return
	}

	item := new(T)
	if !middleware.BindJSON(ctx, item) {
		return
	}
	if !matchID(ctx, *idOf(existing), idOf(item)) {
		return
	}

	if err := repo.Edit(ctx.Request.Context(), item); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	stored, err := repo.Get(ctx.Request.Context(), *idOf(item))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, stored)
}

func deleteEntity[T any](ctx *gin.Context, repo entityStore[T], what string) {
	item, ok := resolve(ctx, repo.Get, "id", what)
	if !ok {
		return
	}

	if err := repo.Delete(ctx.Request.Context(), item); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// flip adapts a relationship operation to a route that names its member first
func flip[A, B any](op func(context.Context, *A, *B) error) func(context.Context, *B, *A) error {
	return func(ctx context.Context, b *B, a *A) error {
		return op(ctx, a, b)
	}
}
