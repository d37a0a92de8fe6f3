// Package view shapes repository results into caller-facing response models.
// Everything in here is a pure transformation; no I/O happens at this layer.
package view

import (
	"time"

	"inkwell/internal/models"
)

// summaryRuneLimit is the maximum number of characters kept in a post summary.
const summaryRuneLimit = 100

// AuthorRef is the minimal author projection embedded in post and comment views.
type AuthorRef struct {
	ID       uint   `json:"id"`
	Nickname string `json:"nickname"`
}

// CommentNode is a comment with its direct replies attached.
type CommentNode struct {
	ID              uint          `json:"id"`
	Content         string        `json:"content"`
	Author          AuthorRef     `json:"author"`
	CreatedAt       time.Time     `json:"createdAt"`
	ParentCommentID *uint         `json:"parentCommentId,omitempty"`
	Replies         []CommentNode `json:"replies"`
}

// PostSummary is the condensed post projection used by listings.
type PostSummary struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Summary      string    `json:"summary"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	Author       AuthorRef `json:"author"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PostDetail is the full post projection including tags and the comment tree.
type PostDetail struct {
	ID        uint          `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	ViewCount int           `json:"viewCount"`
	LikeCount int           `json:"likeCount"`
	CreatedAt time.Time     `json:"createdAt"`
	Author    AuthorRef     `json:"author"`
	Tags      []string      `json:"tags"`
	Comments  []CommentNode `json:"comments"`
}

// PostList is a page of post summaries plus pagination metadata.
type PostList struct {
	Posts       []PostSummary `json:"posts"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
}

// Summarize returns the first 100 characters of content with an ellipsis
// suffix when content is longer, otherwise content unmodified.
func Summarize(content string) string {
	runes := []rune(content)
	if len(runes) <= summaryRuneLimit {
		return content
	}
	return string(runes[:summaryRuneLimit]) + "..."
}

// TotalPages computes ceil(totalCount / limit). A non-positive limit yields 0.
func TotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((totalCount + int64(limit) - 1) / int64(limit))
}

// NewPostList assembles a listing page. The requested page is echoed back
// verbatim, even when it lies beyond the last page.
func NewPostList(summaries []PostSummary, totalCount int64, limit, page int) PostList {
	if summaries == nil {
		summaries = []PostSummary{}
	}
	return PostList{
		Posts:       summaries,
		TotalPages:  TotalPages(totalCount, limit),
		CurrentPage: page,
	}
}

// NewPostSummary projects a post into its listing shape. The comment count is
// supplied by the caller since it lives in the comment repository.
func NewPostSummary(post *models.Post, commentCount int) PostSummary {
	return PostSummary{
		ID:           post.ID,
		Title:        post.Title,
		Summary:      Summarize(post.Content),
		LikeCount:    post.LikeCount,
		CommentCount: commentCount,
		Author:       AuthorRef{ID: post.User.ID, Nickname: post.User.Nickname},
		CreatedAt:    post.CreatedAt,
	}
}

// NewPostDetail projects a post plus its flat comment list into the detail shape.
func NewPostDetail(post *models.Post, comments []*models.Comment) PostDetail {
	tags := make([]string, 0, len(post.Tags))
	for _, t := range post.Tags {
		tags = append(tags, t.Name)
	}
	return PostDetail{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		ViewCount: post.ViewCount,
		LikeCount: post.LikeCount,
		CreatedAt: post.CreatedAt,
		Author:    AuthorRef{ID: post.User.ID, Nickname: post.User.Nickname},
		Tags:      tags,
		Comments:  BuildCommentTree(comments),
	}
}

// BuildCommentTree partitions a flat, chronologically ordered comment list
// into top-level comments with their direct replies attached. The response
// nests exactly one level: replies whose parent is itself a reply are not
// shown. Input order is preserved within each level.
func BuildCommentTree(comments []*models.Comment) []CommentNode {
	nodes := make([]CommentNode, 0, len(comments))
	index := make(map[uint]int, len(comments))

	for _, c := range comments {
		if c.ParentCommentID != nil {
			continue
		}
		nodes = append(nodes, newCommentNode(c))
		index[c.ID] = len(nodes) - 1
	}

	for _, c := range comments {
		if c.ParentCommentID == nil {
			continue
		}
		parentIdx, ok := index[*c.ParentCommentID]
		if !ok {
			// Parent is itself a reply, or was deleted. Flattened out of display.
			continue
		}
		nodes[parentIdx].Replies = append(nodes[parentIdx].Replies, newCommentNode(c))
	}

	return nodes
}

func newCommentNode(c *models.Comment) CommentNode {
	return CommentNode{
		ID:              c.ID,
		Content:         c.Content,
		Author:          AuthorRef{ID: c.User.ID, Nickname: c.User.Nickname},
		CreatedAt:       c.CreatedAt,
		ParentCommentID: c.ParentCommentID,
		Replies:         []CommentNode{},
	}
}
