// Package yatube holds the domain types for the blog platform: users
// write posts, posts optionally belong to a group, readers comment on
// posts and follow authors to build a personal feed.
package yatube

import "errors"

var (
	ErrConflict = errors.New("resource already exists")
	ErrNotFound = errors.New("resource not found")
)

// Repository is the full storage surface the server is wired with.
type Repository interface {
	UserService
	GroupService
	PostService
	CommentService
	FollowService
}
