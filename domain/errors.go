package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrUnauthorized will throw if the caller identity is missing or invalid
	ErrUnauthorized = errors.New("not authenticated")
	// ErrForbidden will throw if the caller may not act on the item
	ErrForbidden = errors.New("you have no permission on this item")
	// ErrCacheMiss means the cache has no state for the key and it must be seeded
	ErrCacheMiss = errors.New("cache miss")
)
