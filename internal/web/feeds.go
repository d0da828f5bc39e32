package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	yterrs "github.com/dkazarin/yatube/internal/errors"
	"github.com/dkazarin/yatube/internal/yatube"
)

// listPage fetches one page of a scope plus the total, leaving Limit and
// Offset to be filled in here.
func (s *Server) listPage(r *http.Request, args yatube.ListPostsArgs) (pageData, int, error) {
	page := parsePage(r)

	total, err := s.repo.CountPosts(r.Context(), args)
	if err != nil {
		return pageData{}, 0, err
	}

	args.Limit = pageSize
	args.Offset = pageOffset(page)
	posts, err := s.repo.ListPosts(r.Context(), args)
	if err != nil {
		return pageData{}, 0, err
	}

	return newPageData(posts, page, total), total, nil
}

type indexData struct {
	Page pageData
}

func (s *Server) getIndex(w http.ResponseWriter, r *http.Request) error {
	key := fmt.Sprintf("index:%d", parsePage(r))
	if cached, ok := s.pageCache.Get(key); ok {
		writeHTML(w, http.StatusOK, cached)
		return nil
	}

	page, _, err := s.listPage(r, yatube.ListPostsArgs{})
	if err != nil {
		return err
	}

	byts, err := s.renderer.renderBytes("posts/index.html", indexData{Page: page})
	if err != nil {
		return err
	}
	s.pageCache.Add(key, byts)
	writeHTML(w, http.StatusOK, byts)

	return nil
}

type groupData struct {
	Group yatube.Group
	Page  pageData
}

func (s *Server) getGroupPosts(w http.ResponseWriter, r *http.Request) error {
	slug := mux.Vars(r)["slug"]

	group, err := s.repo.GroupBySlug(r.Context(), slug)
	if errors.Is(err, yatube.ErrNotFound) {
		return yterrs.E(err, http.StatusNotFound)
	}
	if err != nil {
		return err
	}

	page, _, err := s.listPage(r, yatube.ListPostsArgs{GroupSlug: slug})
	if err != nil {
		return err
	}

	return s.renderer.render(w, http.StatusOK, "posts/group_list.html", groupData{
		Group: group,
		Page:  page,
	})
}

type profileData struct {
	Author    yatube.User
	PostCount int
	Page      pageData

	ShowFollowButton bool
	Following        bool
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) error {
	username := mux.Vars(r)["username"]

	author, err := s.repo.UserByUsername(r.Context(), username)
	if errors.Is(err, yatube.ErrNotFound) {
		return yterrs.E(err, http.StatusNotFound)
	}
	if err != nil {
		return err
	}

	page, total, err := s.listPage(r, yatube.ListPostsArgs{AuthorUsername: username})
	if err != nil {
		return err
	}

	data := profileData{
		Author:    author,
		PostCount: total,
		Page:      page,
	}
	if usr, ok := s.viewer(r); ok && usr.ID != author.ID {
		following, err := s.repo.Follows(r.Context(), usr.ID, author.ID)
		if err != nil {
			return err
		}
		data.ShowFollowButton = true
		data.Following = following
	}

	return s.renderer.render(w, http.StatusOK, "posts/profile.html", data)
}

type followIndexData struct {
	Page pageData
}

func (s *Server) getFollowIndex(w http.ResponseWriter, r *http.Request) error {
	usr, ok := s.viewer(r)
	if !ok {
		redirectToLogin(w, r)
		return nil
	}

	page, _, err := s.listPage(r, yatube.ListPostsArgs{FollowedBy: usr.ID})
	if err != nil {
		return err
	}

	return s.renderer.render(w, http.StatusOK, "posts/follow.html", followIndexData{Page: page})
}
