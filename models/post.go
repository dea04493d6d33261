// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a blog entry owned by exactly one user.
type Post struct {
	ID       uuid.UUID
	AuthorID uuid.UUID

	// AuthorUsername is the username of the owner, joined on read.
	AuthorUsername string

	// Title is at most 100 characters long.
	Title string
	Body  string

	// CommentIDs lists the identifiers of the post's comments, newest first.
	// It is filled on read only.
	CommentIDs []uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the name of the database table
// associated with the Post model.
func (p Post) TableName() string {
	return "posts"
}

// Comment is a reply to a post, owned by exactly one user.
type Comment struct {
	ID       uuid.UUID
	AuthorID uuid.UUID
	PostID   uuid.UUID

	// AuthorUsername is the username of the owner, joined on read.
	AuthorUsername string

	Body string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the name of the database table
// associated with the Comment model.
func (c Comment) TableName() string {
	return "comments"
}
