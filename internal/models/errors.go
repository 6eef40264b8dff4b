// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidationError reports a malformed or missing input field.
// Field names match the JSON input field, Reason is user-presentable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an operation against a nonexistent entity id.
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ReferenceError reports a reference to a nonexistent related entity,
// e.g. an unknown category or tag id on a post.
type ReferenceError struct {
	Entity string
	ID     uuid.UUID
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("referenced %s %s does not exist", e.Entity, e.ID)
}

// ConflictError reports a deletion blocked by existing references.
// Deletion is refused, never cascaded.
type ConflictError struct {
	Entity  string
	ID      uuid.UUID
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Entity, e.ID, e.Message)
}

// InvalidTransitionError reports an unsupported post status transition.
type InvalidTransitionError struct {
	From   PostStatus
	Action PostAction
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a %s post", e.Action, e.From)
}

// StorageError reports a failure in the file storage collaborator.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
