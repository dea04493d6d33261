// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-blog-api/models"
)

// UUIDs are always bound as strings: uuid.UUID is an array type and squirrel
// would otherwise expand it into a list of bytes.

var userColumns = []string{
	"id",
	"username",
	"email",
	"password_hash",
	"first_name",
	"last_name",
	"about",
	"country",
	"image",
	"is_active",
	"is_staff",
	"created_at",
	"updated_at",
	"activated_at",
}

var postColumns = []string{
	"p.id",
	"p.author_id",
	"u.username",
	"p.title",
	"p.body",
	"p.created_at",
	"p.updated_at",
}

var commentColumns = []string{
	"c.id",
	"c.author_id",
	"c.post_id",
	"u.username",
	"c.body",
	"c.created_at",
	"c.updated_at",
}

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(user.TableName()).
		Columns(userColumns...).
		Values(
			user.ID.String(),
			user.Username,
			user.Email,
			user.PasswordHash,
			user.FirstName,
			user.LastName,
			user.About,
			user.Country,
			user.Image,
			user.IsActive,
			user.IsStaff,
			user.CreatedAt,
			user.UpdatedAt,
			nullTime(user.ActivatedAt),
		).
		ToSql()
}

// buildSelectUserQuery selects a single user matching where.
func buildSelectUserQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(where).
		Limit(1).
		ToSql()
}

func buildListUsersQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		OrderBy("created_at", "id").
		ToSql()
}

func buildUpdateUserProfileQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Update(user.TableName()).
		Set("username", user.Username).
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("about", user.About).
		Set("country", user.Country).
		Set("updated_at", user.UpdatedAt).
		Where(sq.Eq{"id": user.ID.String()}).
		ToSql()
}

// buildSetUserFieldsQuery updates the given columns of one user and bumps
// updated_at.
func buildSetUserFieldsQuery(b sq.StatementBuilderType, id uuid.UUID, fields map[string]any, now time.Time) (string, []any, error) {
	return b.Update(models.User{}.TableName()).
		SetMap(fields).
		Set("updated_at", now).
		Where(sq.Eq{"id": id.String()}).
		ToSql()
}

func buildDeleteByIDQuery(b sq.StatementBuilderType, table string, id uuid.UUID) (string, []any, error) {
	return b.Delete(table).
		Where(sq.Eq{"id": id.String()}).
		ToSql()
}

func selectPosts(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select(postColumns...).
		From("posts p").
		Join("users u ON u.id = p.author_id")
}

func buildSelectPostQuery(b sq.StatementBuilderType, id uuid.UUID) (string, []any, error) {
	return selectPosts(b).
		Where(sq.Eq{"p.id": id.String()}).
		ToSql()
}

func buildListPostsQuery(b sq.StatementBuilderType) (string, []any, error) {
	return selectPosts(b).
		OrderBy("p.created_at DESC", "p.id DESC").
		ToSql()
}

// buildSelectCommentIDsQuery selects (id, post_id) of the comments of the
// given posts, newest first.
func buildSelectCommentIDsQuery(b sq.StatementBuilderType, postIDs []uuid.UUID) (string, []any, error) {
	ids := make([]string, len(postIDs))
	for i, id := range postIDs {
		ids[i] = id.String()
	}

	return b.Select("id", "post_id").
		From(models.Comment{}.TableName()).
		Where(sq.Eq{"post_id": ids}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
}

func buildInsertPostQuery(b sq.StatementBuilderType, post models.Post) (string, []any, error) {
	return b.Insert(post.TableName()).
		Columns("id", "author_id", "title", "body", "created_at", "updated_at").
		Values(post.ID.String(), post.AuthorID.String(), post.Title, post.Body, post.CreatedAt, post.UpdatedAt).
		ToSql()
}

func buildUpdatePostQuery(b sq.StatementBuilderType, post models.Post) (string, []any, error) {
	return b.Update(post.TableName()).
		Set("title", post.Title).
		Set("body", post.Body).
		Set("updated_at", post.UpdatedAt).
		Where(sq.Eq{"id": post.ID.String()}).
		ToSql()
}

func selectComments(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select(commentColumns...).
		From("comments c").
		Join("users u ON u.id = c.author_id")
}

func buildSelectCommentQuery(b sq.StatementBuilderType, postID, id uuid.UUID) (string, []any, error) {
	return selectComments(b).
		Where(sq.Eq{"c.id": id.String(), "c.post_id": postID.String()}).
		ToSql()
}

func buildListCommentsQuery(b sq.StatementBuilderType, postID uuid.UUID) (string, []any, error) {
	return selectComments(b).
		Where(sq.Eq{"c.post_id": postID.String()}).
		OrderBy("c.created_at DESC", "c.id DESC").
		ToSql()
}

func buildInsertCommentQuery(b sq.StatementBuilderType, comment models.Comment) (string, []any, error) {
	return b.Insert(comment.TableName()).
		Columns("id", "author_id", "post_id", "body", "created_at", "updated_at").
		Values(comment.ID.String(), comment.AuthorID.String(), comment.PostID.String(), comment.Body, comment.CreatedAt, comment.UpdatedAt).
		ToSql()
}

func buildUpdateCommentQuery(b sq.StatementBuilderType, comment models.Comment) (string, []any, error) {
	return b.Update(comment.TableName()).
		Set("body", comment.Body).
		Set("updated_at", comment.UpdatedAt).
		Where(sq.Eq{"id": comment.ID.String(), "post_id": comment.PostID.String()}).
		ToSql()
}

func buildDeleteCommentQuery(b sq.StatementBuilderType, postID, id uuid.UUID) (string, []any, error) {
	return b.Delete(models.Comment{}.TableName()).
		Where(sq.Eq{"id": id.String(), "post_id": postID.String()}).
		ToSql()
}
