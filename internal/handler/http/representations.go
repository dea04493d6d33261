// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/models"
)

func newUserListItems(users []models.User) []models.UserListItem {
	items := make([]models.UserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, models.UserListItem{ID: u.ID, Username: u.Username})
	}
	return items
}

func newUserDetail(u models.User) models.UserDetail {
	return models.UserDetail{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Country:   u.Country,
		About:     u.About,
		Image:     imageURL(u),
	}
}

// imageURL is the public avatar location of u, nil when u has none.
func imageURL(u models.User) *string {
	if u.ImageURL == "" {
		return nil
	}
	url := u.ImageURL
	return &url
}

func newPostResponse(p models.Post) models.PostResponse {
	comments := p.CommentIDs
	if comments == nil {
		comments = []uuid.UUID{}
	}

	return models.PostResponse{
		ID:       p.ID,
		Author:   p.AuthorUsername,
		Title:    p.Title,
		Body:     p.Body,
		Created:  p.CreatedAt,
		Updated:  p.UpdatedAt,
		Comments: comments,
	}
}

func newPostResponses(posts []models.Post) []models.PostResponse {
	out := make([]models.PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, newPostResponse(p))
	}
	return out
}

func newCommentResponse(c models.Comment) models.CommentResponse {
	return models.CommentResponse{
		ID:      c.ID,
		Author:  c.AuthorUsername,
		Post:    c.PostID,
		Body:    c.Body,
		Created: c.CreatedAt,
		Updated: c.UpdatedAt,
	}
}

func newCommentResponses(comments []models.Comment) []models.CommentResponse {
	out := make([]models.CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, newCommentResponse(c))
	}
	return out
}
