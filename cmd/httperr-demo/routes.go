/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"dirpx.dev/httperr"
	"dirpx.dev/httperr/ginx"
	"dirpx.dev/httperr/httpx"
	"dirpx.dev/httperr/render"
	"github.com/gin-gonic/gin"
)

type user struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// userNotFound is a classified error: its text is safe to show.
type userNotFound struct{ id int }

func (e userNotFound) Error() string { return fmt.Sprintf("user %d not found", e.id) }
func (userNotFound) Status() int     { return http.StatusNotFound }
func (userNotFound) Reason() string  { return "User not found" }

// slowDown asks clients to back off.
type slowDown struct{}

func (slowDown) Error() string             { return "Too many requests" }
func (slowDown) Status() int               { return http.StatusTooManyRequests }
func (slowDown) RetryAfter() time.Duration { return 5 * time.Second }

var errStoreOffline = errors.New("store: replica offline")

type store struct {
	mu    sync.Mutex
	users map[int]user
	calls int
}

func newStore() *store {
	return &store{users: map[int]user{1: {ID: 1, Name: "ada"}}}
}

func (s *store) get(id int) (user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls%100 == 0 {
		return user{}, slowDown{}
	}
	u, ok := s.users[id]
	if !ok {
		return user{}, userNotFound{id}
	}
	return u, nil
}

func newRouter(c *httperr.Converter, s *store) http.Handler {
	r := gin.New()
	r.Use(ginx.Recovery[httperr.Text](c))

	api := r.Group("/api")
	api.Use(ginx.Errors[render.JSON](c))
	api.GET("/users/:id", ginx.Handle[user, render.JSON](c, func(ctx *gin.Context) (user, error) {
		id, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			return user{}, httperr.WithStatus(fmt.Errorf("parse id: %w", err), http.StatusBadRequest)
		}
		return s.get(id)
	}))
	api.GET("/reports", func(ctx *gin.Context) {
		_ = ctx.Error(fmt.Errorf("build report: %w", errStoreOffline))
	})

	r.GET("/users/:id", ginx.Handle[user, httperr.Text](c, func(ctx *gin.Context) (user, error) {
		id, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			return user{}, httperr.WithStatus(err, http.StatusBadRequest)
		}
		return s.get(id)
	}))
	r.GET("/panic", func(*gin.Context) { panic("unreachable branch") })

	mux := http.NewServeMux()
	mux.Handle("/healthz", httpx.Handle[map[string]string, render.Problem](c, func(*http.Request) (map[string]string, error) {
		return map[string]string{"status": "ok"}, nil
	}))
	mux.Handle("/", r)
	return mux
}
