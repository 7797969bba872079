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

// Package ginx adapts httperr to gin handlers and middleware.
package ginx

import (
	"fmt"
	"net/http"

	"dirpx.dev/httperr"
	"github.com/gin-gonic/gin"
)

// Handle returns a gin handler that calls fn and writes its value with
// ctx.JSON, or renders its error with R and aborts the chain.
//
// The DynamicError is also pushed onto ctx.Errors so logging middleware can
// see it.
func Handle[T any, R httperr.Renderer](c *httperr.Converter, fn func(*gin.Context) (T, error)) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		v, err := fn(ctx)
		if d := c.Convert(err); d != nil {
			_ = ctx.Error(d)
			Abort[R](ctx, d)
			return
		}
		ctx.JSON(http.StatusOK, v)
	}
}

// Abort renders d with R, writes it and aborts the handler chain.
func Abort[R httperr.Renderer](ctx *gin.Context, d *httperr.DynamicError) {
	resp := httperr.Render[R](d)
	_ = resp.Send(ctx.Writer)
	ctx.Abort()
}

// Errors returns middleware that renders the last error a handler pushed
// with ctx.Error, if nothing has been written yet.
func Errors[R httperr.Renderer](c *httperr.Converter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()
		if ctx.Writer.Written() {
			return
		}
		last := ctx.Errors.Last()
		if last == nil {
			return
		}
		if d := c.Convert(last.Err); d != nil {
			Abort[R](ctx, d)
		}
	}
}

// Recovery returns middleware that turns a handler panic into a catch-all
// error rendered with R.
func Recovery[R httperr.Renderer](c *httperr.Converter) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("panic: %v", rec)
			} else {
				err = fmt.Errorf("panic: %w", err)
			}
			d := c.Convert(err)
			if ctx.Writer.Written() {
				ctx.Abort()
				return
			}
			Abort[R](ctx, d)
		}()
		ctx.Next()
	}
}
